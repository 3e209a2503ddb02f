package services

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Order    OrderSvcFacade
	Ledger   LedgerSvcFacade
	Transfer TransferSvcFacade
}
