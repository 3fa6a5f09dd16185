package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/quirodesk/clinica-api/internal/domain/enum"
)

// Product represents a sellable product or service in the catalog. The
// point-of-sale form reads SalePrice at add-time and never re-queries it;
// InternalCost is captured on each receipt line for margin reporting and is
// never exposed on patient-facing surfaces.
type Product struct {
	ID           uint             `gorm:"primary_key;column:id_prod" json:"id_prod"`
	Name         string           `gorm:"column:nombre;size:255;not null" json:"nombre"`
	InternalCost float64          `gorm:"column:costo;type:decimal(10,2);default:0" json:"costo"`
	SalePrice    float64          `gorm:"column:venta;type:decimal(10,2);not null" json:"venta"`
	Kind         enum.ProductKind `gorm:"column:adicional;default:0" json:"adicional"`
	Active       bool             `gorm:"column:esta_activo;default:true" json:"esta_activo"`
	Stock        int              `gorm:"column:stock_actual;default:0" json:"stock_actual"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Sellable reports whether the product belongs in the point-of-sale
// catalog: active entries of any kind except therapies.
func (p *Product) Sellable() bool {
	return p.Active && p.Kind != enum.ProductKindTherapy
}
