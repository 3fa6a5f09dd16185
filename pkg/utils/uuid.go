package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// ReceiptFolio formats a receipt ID as the folio printed on tickets and PDFs.
func ReceiptFolio(id uint) string {
	return fmt.Sprintf("REC-%06d", id)
}
