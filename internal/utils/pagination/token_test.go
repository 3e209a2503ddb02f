package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 14, 30, 45, 123456789, time.UTC)
	id := "entry-42"

	token := EncodeCursor(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Creation time should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// IDs containing the separator survive the round trip.
	pipedID := "a|b|c"
	decodedAt, decodedID, err = DecodeCursor(EncodeCursor(createdAt, pipedID))
	assert.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt)
	assert.Equal(t, pipedID, decodedID)

	// Current time values round-trip within nanosecond precision.
	now := time.Now().UTC()
	decodedAt, _, err = DecodeCursor(EncodeCursor(now, "x"))
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedAt), "Current time should match after decode")
}

func TestDecodeCursorError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	_, _, err = DecodeCursor("MjAyNS0wMy0xMFQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid time component
	_, _, err = DecodeCursor(base64.StdEncoding.EncodeToString([]byte("notatime|id")))
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "time parse", "Error should mention time parsing issue")
}
