package ledger

import (
	"errors"
	"fmt"
	"math"
)

// Mode controls whether a ledger accepts mutation. It is fixed at
// construction and never changes for the lifetime of the instance.
type Mode int

const (
	// Editable is the mode for a new or in-progress receipt.
	Editable Mode = iota
	// ReadOnly is the mode for viewing a historical receipt.
	ReadOnly
)

// DiscountMode selects how a line discount value is interpreted.
type DiscountMode string

const (
	// DiscountPercent interprets the value as a percentage of the gross line (0-100).
	DiscountPercent DiscountMode = "%"
	// DiscountAmount interprets the value as a flat amount, clamped to the gross line.
	DiscountAmount DiscountMode = "$"
)

// ParseDiscountMode maps the form value of the discount-type selector to a
// DiscountMode. Anything other than "%" is treated as a flat amount.
func ParseDiscountMode(s string) DiscountMode {
	if s == string(DiscountPercent) {
		return DiscountPercent
	}
	return DiscountAmount
}

// Validation rejections produced by AddItem. Each aborts the add without
// mutating the ledger.
var (
	ErrReadOnly         = errors.New("receipt is read only")
	ErrNoProduct        = errors.New("no product selected")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidPrice     = errors.New("unit price cannot be negative")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrPercentRange     = errors.New("discount percentage must be between 0 and 100")
	ErrDuplicateProduct = errors.New("product is already on the receipt; remove it and add it again to modify")
)

// LineItem is one line of a receipt. The JSON field names are the wire
// contract shared with the receipt submission endpoint and must not change.
type LineItem struct {
	ProductID   int     `json:"id_prod"`
	Quantity    int     `json:"cantidad"`
	Description string  `json:"descripcion_prod"`
	UnitPrice   float64 `json:"costo_unitario_venta"`
	Discount    float64 `json:"descuento_linea"`
	NetSubtotal float64 `json:"subtotal_linea_neto"`
}

// GrossLine returns quantity x unit price before any discount.
func (it LineItem) GrossLine() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// Payments holds the four independent payment fields of a receipt.
type Payments struct {
	Cash     float64
	Card     float64
	Transfer float64
	Other    float64
}

// Total sums the four payment fields.
func (p Payments) Total() float64 {
	return p.Cash + p.Card + p.Transfer + p.Other
}

// Totals is the derived aggregate over the current line items and payments.
// It is recomputed in full on every mutation, never incrementally.
type Totals struct {
	Gross    float64
	Discount float64
	Net      float64
	Paid     float64
	// Change is the raw change amount and may be negative when the receipt
	// has not been fully paid. Use DisplayChange for presentation.
	Change float64
}

// DisplayChange floors the change at zero for display.
func (t Totals) DisplayChange() float64 {
	if t.Change < 0 {
		return 0
	}
	return t.Change
}

// AddItemInput carries the observed input of the add-item controls.
type AddItemInput struct {
	ProductID     int
	Description   string
	Quantity      int
	UnitPrice     float64
	DiscountMode  DiscountMode
	DiscountValue float64
}

// HydrationItem is a prior line item as supplied by the server when viewing
// or editing an existing receipt. Historical rows carry the description as
// descripcion_item while freshly added rows use descripcion_prod; both are
// accepted and normalized at this boundary.
type HydrationItem struct {
	ProductID       int     `json:"id_prod"`
	Quantity        int     `json:"cantidad"`
	DescriptionItem string  `json:"descripcion_item"`
	DescriptionProd string  `json:"descripcion_prod"`
	UnitPrice       float64 `json:"costo_unitario_venta"`
	Discount        float64 `json:"descuento_linea"`
	NetSubtotal     float64 `json:"subtotal_linea_neto"`
}

func (h HydrationItem) description() string {
	if h.DescriptionItem != "" {
		return h.DescriptionItem
	}
	if h.DescriptionProd != "" {
		return h.DescriptionProd
	}
	return "Producto/Servicio"
}

// Ledger is the ordered collection of line items composing one receipt,
// together with the observed payment fields. All arithmetic lives here;
// rendering is delegated to the attached View.
type Ledger struct {
	mode       Mode
	items      []LineItem
	payments   Payments
	view       View
	submitting bool
}

// New creates an empty ledger in the given mode. A nil view is replaced by
// a no-op view so the ledger can be driven without any rendering surface.
func New(mode Mode, view View) *Ledger {
	if view == nil {
		view = NopView{}
	}
	l := &Ledger{mode: mode, view: view}
	l.ComputeTotals()
	return l
}

// Mode returns the mode the ledger was created with.
func (l *Ledger) Mode() Mode {
	return l.mode
}

// Len returns the number of line items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns a copy of the line items in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Item looks up a line item by product ID.
func (l *Ledger) Item(productID int) (LineItem, bool) {
	for _, it := range l.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

// AddItem validates the input and, on success, appends a new line item,
// renders its row and recomputes the totals. Preconditions are checked in a
// fixed order and any failure leaves the ledger untouched; invalid numeric
// fields are reset to a safe default through the view before rejecting.
func (l *Ledger) AddItem(in AddItemInput) (LineItem, error) {
	if l.mode == ReadOnly {
		return LineItem{}, ErrReadOnly
	}
	if in.ProductID <= 0 {
		return LineItem{}, ErrNoProduct
	}
	if in.Quantity <= 0 {
		l.view.ResetQuantity(1)
		return LineItem{}, ErrInvalidQuantity
	}
	if in.UnitPrice < 0 {
		return LineItem{}, ErrInvalidPrice
	}
	if in.DiscountValue < 0 {
		l.view.ResetDiscount(0)
		return LineItem{}, ErrNegativeDiscount
	}

	gross := float64(in.Quantity) * in.UnitPrice
	var discount float64
	switch in.DiscountMode {
	case DiscountPercent:
		if in.DiscountValue > 100 {
			l.view.ResetDiscount(0)
			return LineItem{}, ErrPercentRange
		}
		discount = gross * in.DiscountValue / 100
	default:
		discount = in.DiscountValue
		if discount > gross {
			if gross > 0 {
				// Clamp to the gross line, correct the input field and warn,
				// but proceed: this is not a rejection.
				discount = gross
				l.view.SetDiscountValue(round2(discount))
				l.view.Warn(fmt.Sprintf("discount (%.2f) exceeds the line subtotal (%.2f); the maximum was applied", in.DiscountValue, gross))
			} else {
				discount = 0
			}
		}
	}

	if _, exists := l.Item(in.ProductID); exists {
		return LineItem{}, ErrDuplicateProduct
	}

	item := LineItem{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Discount:    round2(discount),
		NetSubtotal: round2(gross - discount),
	}
	l.items = append(l.items, item)
	l.view.RenderRow(item, true)
	l.ComputeTotals()
	return item, nil
}

// RemoveItem removes the line item with the given product ID, if present,
// and recomputes the totals. Removing an absent item is a no-op.
func (l *Ledger) RemoveItem(productID int) {
	if l.mode == ReadOnly {
		return
	}
	for i, it := range l.items {
		if it.ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.view.RemoveRow(productID)
			l.ComputeTotals()
			return
		}
	}
}

// SetPayments replaces the observed payment fields and recomputes the totals.
func (l *Ledger) SetPayments(p Payments) {
	l.payments = p
	l.ComputeTotals()
}

// Payments returns the current payment fields.
func (l *Ledger) Payments() Payments {
	return l.payments
}

// ComputeTotals recomputes the aggregate from scratch, pushes the figures to
// the view and returns them. Calling it twice with no mutation in between
// yields identical results.
func (l *Ledger) ComputeTotals() Totals {
	var t Totals
	for _, it := range l.items {
		t.Gross += it.GrossLine()
		t.Discount += it.Discount
	}
	t.Net = t.Gross - t.Discount
	t.Paid = l.payments.Total()

	// A receipt with a zero or negative net total still records any tendered
	// amount as change (e.g. a complimentary receipt that was paid anyway).
	switch {
	case t.Net <= 0 && t.Paid <= 0:
		t.Change = 0
	case t.Net > 0:
		t.Change = t.Paid - t.Net
	default:
		t.Change = t.Paid
	}

	l.view.UpdateTotals(t)
	l.view.SetSubmitEnabled(len(l.items) > 0 && l.mode == Editable && !l.submitting)
	return t
}

// Hydrate rebuilds the ledger from a server-supplied list of prior line
// items, discarding any existing state. The data is trusted as already valid
// and bypasses the AddItem pipeline entirely. In read-only mode the rendered
// rows carry no remove control.
func (l *Ledger) Hydrate(items []HydrationItem) {
	l.items = l.items[:0]
	for _, h := range items {
		item := LineItem{
			ProductID:   h.ProductID,
			Quantity:    h.Quantity,
			Description: h.description(),
			UnitPrice:   h.UnitPrice,
			Discount:    h.Discount,
			NetSubtotal: h.NetSubtotal,
		}
		l.items = append(l.items, item)
		l.view.RenderRow(item, l.mode == Editable)
	}
	l.ComputeTotals()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
