package services

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference builds a prefixed, human readable unique code, e.g.
// ASC-9F1C2B7A1D34 for associations or WAL-... for wallets.
func NewReference(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + id[:12]
}
