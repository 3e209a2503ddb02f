package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeCursor creates a base64 encoded token from a row's creation time and
// id, used for consistent keyset pagination across repositories.
func EncodeCursor(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses the base64 encoded token back into creation time and id.
func DecodeCursor(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}
	return createdAt, parts[1], nil
}
