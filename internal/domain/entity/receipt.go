package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/quirodesk/clinica-api/internal/domain/enum"
)

// Receipt is the persisted header of a point-of-sale receipt: the totals the
// ledger computed, the initial payment split and the outstanding balance.
type Receipt struct {
	ID               uint               `gorm:"primary_key;column:id_recibo" json:"id_recibo"`
	PatientID        uint               `gorm:"column:id_px;not null;index" json:"id_px"`
	PractitionerID   uint               `gorm:"column:id_dr;not null;index" json:"id_dr"`
	Date             time.Time          `gorm:"column:fecha;type:date;not null" json:"fecha"`
	GrossSubtotal    float64            `gorm:"column:subtotal_bruto;type:decimal(10,2);default:0" json:"subtotal_bruto"`
	TotalDiscount    float64            `gorm:"column:descuento_total;type:decimal(10,2);default:0" json:"descuento_total"`
	NetTotal         float64            `gorm:"column:total_neto;type:decimal(10,2);default:0" json:"total_neto"`
	CashPayment      float64            `gorm:"column:pago_efectivo;type:decimal(10,2);default:0" json:"pago_efectivo"`
	CardPayment      float64            `gorm:"column:pago_tarjeta;type:decimal(10,2);default:0" json:"pago_tarjeta"`
	TransferPayment  float64            `gorm:"column:pago_transferencia;type:decimal(10,2);default:0" json:"pago_transferencia"`
	OtherPayment     float64            `gorm:"column:pago_otro;type:decimal(10,2);default:0" json:"pago_otro"`
	OtherPaymentDesc *string            `gorm:"column:pago_otro_desc;size:255" json:"pago_otro_desc,omitempty"`
	Notes            *string            `gorm:"column:notas;type:text" json:"notas,omitempty"`
	Status           enum.ReceiptStatus `gorm:"column:estado;size:20;default:'PENDIENTE'" json:"estado"`
	Balance          float64            `gorm:"column:saldo_pendiente;type:decimal(10,2);default:0" json:"saldo_pendiente"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Patient      *Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Practitioner *Practitioner    `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Details      []ReceiptDetail  `gorm:"foreignKey:ReceiptID" json:"detalles,omitempty"`
	Payments     []ReceiptPayment `gorm:"foreignKey:ReceiptID" json:"historial_pagos,omitempty"`
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// InitialPaid sums the payment split recorded when the receipt was created.
func (r *Receipt) InitialPaid() float64 {
	return r.CashPayment + r.CardPayment + r.TransferPayment + r.OtherPayment
}

// ReceiptDetail is one line of a receipt, frozen at sale time: the
// description and sale price are copied from the catalog so later catalog
// edits never rewrite history. InternalCost is the product's cost at sale
// time, kept for margin reporting only.
type ReceiptDetail struct {
	ID           uint    `gorm:"primary_key;column:id_detalle" json:"id_detalle"`
	ReceiptID    uint    `gorm:"column:id_recibo;not null;index" json:"id_recibo"`
	ProductID    uint    `gorm:"column:id_prod;not null;index" json:"id_prod"`
	Quantity     int     `gorm:"column:cantidad;not null" json:"cantidad"`
	Description  string  `gorm:"column:descripcion_prod;size:255" json:"descripcion_prod"`
	UnitPrice    float64 `gorm:"column:costo_unitario_venta;type:decimal(10,2);not null" json:"costo_unitario_venta"`
	InternalCost float64 `gorm:"column:costo_unitario_compra;type:decimal(10,2);default:0" json:"-"`
	Discount     float64 `gorm:"column:descuento_linea;type:decimal(10,2);default:0" json:"descuento_linea"`
	NetSubtotal  float64 `gorm:"column:subtotal_linea_neto;type:decimal(10,2);not null" json:"subtotal_linea_neto"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for the ReceiptDetail model
func (ReceiptDetail) TableName() string {
	return "receipt_details"
}

// ReceiptPayment is one entry of a receipt's payment history: the initial
// payment split at sale time plus any later installments.
type ReceiptPayment struct {
	ID        uint      `gorm:"primary_key;column:id_pago" json:"id_pago"`
	ReceiptID uint      `gorm:"column:id_recibo;not null;index" json:"id_recibo"`
	Date      time.Time `gorm:"column:fecha;type:date;not null" json:"fecha"`
	Amount    float64   `gorm:"column:monto;type:decimal(10,2);not null" json:"monto"`
	Method    string    `gorm:"column:metodo_pago;size:100;not null" json:"metodo_pago"`
	Notes     *string   `gorm:"column:notas;size:255" json:"notas,omitempty"`
	CreatedAt time.Time `gorm:"column:fecha_registro" json:"fecha_registro"`
}

// TableName returns the table name for the ReceiptPayment model
func (ReceiptPayment) TableName() string {
	return "receipt_payments"
}
