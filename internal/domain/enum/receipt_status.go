package enum

import "database/sql/driver"

// ReceiptStatus tracks whether a receipt still has an outstanding balance.
// The values are stored as-is, matching the historical data.
type ReceiptStatus string

const (
	ReceiptStatusPending ReceiptStatus = "PENDIENTE"
	ReceiptStatusPaid    ReceiptStatus = "PAGADO"
)

func (s ReceiptStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ReceiptStatus(v)
	case []byte:
		*s = ReceiptStatus(v)
	}
	return nil
}
