package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePixTxID returns a provider-compatible Pix txid: 32 alphanumeric
// characters (the Pix spec allows 26-35).
func GeneratePixTxID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
