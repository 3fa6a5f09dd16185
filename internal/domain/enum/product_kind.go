package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductKind classifies a catalog entry. Only physical products carry
// stock; therapies are excluded from the point-of-sale catalog.
type ProductKind int

const (
	ProductKindService  ProductKind = 0
	ProductKindPhysical ProductKind = 1
	ProductKindTherapy  ProductKind = 2
)

func (k ProductKind) String() string {
	names := [...]string{"Service", "Physical", "Therapy"}
	if int(k) < 0 || int(k) >= len(names) {
		return "Service"
	}
	return names[k]
}

// TracksStock reports whether selling this kind decrements inventory.
func (k ProductKind) TracksStock() bool {
	return k == ProductKindPhysical
}

func (k ProductKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ProductKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ProductKind(i)
		return nil
	}
	switch str {
	case "Service":
		*k = ProductKindService
	case "Physical":
		*k = ProductKindPhysical
	case "Therapy":
		*k = ProductKindTherapy
	}
	return nil
}

func (k ProductKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *ProductKind) Scan(value interface{}) error {
	if value == nil {
		*k = ProductKindService
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = ProductKind(v)
	case int:
		*k = ProductKind(v)
	}
	return nil
}
