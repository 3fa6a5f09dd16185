package ledger

// View receives state changes from a Ledger. The ledger owns all arithmetic
// and ordering; a View only mirrors the state onto whatever surface renders
// the receipt (a web page, a terminal, a printer preview).
type View interface {
	// RenderRow displays a newly added or hydrated line item. removable
	// reports whether a remove control should accompany the row.
	RenderRow(item LineItem, removable bool)
	// RemoveRow removes a previously rendered row.
	RemoveRow(productID int)
	// UpdateTotals refreshes the displayed aggregate figures.
	UpdateTotals(t Totals)
	// SetSubmitEnabled enables or disables the submit control.
	SetSubmitEnabled(enabled bool)
	// ResetQuantity restores the quantity input after invalid input.
	ResetQuantity(quantity int)
	// ResetDiscount restores the discount input after invalid input.
	ResetDiscount(value float64)
	// SetDiscountValue overwrites the discount input, used when a flat
	// discount is clamped to the gross line.
	SetDiscountValue(value float64)
	// Warn surfaces a non-blocking warning to the user.
	Warn(message string)
}

// NopView discards every notification. It backs ledgers that are driven
// purely for their arithmetic, such as server-side revalidation.
type NopView struct{}

func (NopView) RenderRow(LineItem, bool)  {}
func (NopView) RemoveRow(int)             {}
func (NopView) UpdateTotals(Totals)       {}
func (NopView) SetSubmitEnabled(bool)     {}
func (NopView) ResetQuantity(int)         {}
func (NopView) ResetDiscount(float64)     {}
func (NopView) SetDiscountValue(float64)  {}
func (NopView) Warn(string)               {}
