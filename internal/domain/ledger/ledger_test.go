package ledger

import (
	"errors"
	"testing"
)

// recordingView captures view notifications for assertions.
type recordingView struct {
	rows           []LineItem
	removable      map[int]bool
	removed        []int
	totals         Totals
	submitEnabled  bool
	quantityResets []int
	discountResets []float64
	discountSets   []float64
	warnings       []string
}

func newRecordingView() *recordingView {
	return &recordingView{removable: make(map[int]bool)}
}

func (v *recordingView) RenderRow(item LineItem, removable bool) {
	v.rows = append(v.rows, item)
	v.removable[item.ProductID] = removable
}

func (v *recordingView) RemoveRow(productID int) {
	v.removed = append(v.removed, productID)
	for i, it := range v.rows {
		if it.ProductID == productID {
			v.rows = append(v.rows[:i], v.rows[i+1:]...)
			break
		}
	}
}

func (v *recordingView) UpdateTotals(t Totals)      { v.totals = t }
func (v *recordingView) SetSubmitEnabled(on bool)   { v.submitEnabled = on }
func (v *recordingView) ResetQuantity(q int)        { v.quantityResets = append(v.quantityResets, q) }
func (v *recordingView) ResetDiscount(d float64)    { v.discountResets = append(v.discountResets, d) }
func (v *recordingView) SetDiscountValue(d float64) { v.discountSets = append(v.discountSets, d) }
func (v *recordingView) Warn(msg string)            { v.warnings = append(v.warnings, msg) }

func mustAdd(t *testing.T, l *Ledger, in AddItemInput) LineItem {
	t.Helper()
	item, err := l.AddItem(in)
	if err != nil {
		t.Fatalf("AddItem(%+v) returned error: %v", in, err)
	}
	return item
}

func TestAddItemPercentDiscount(t *testing.T) {
	l := New(Editable, nil)
	item := mustAdd(t, l, AddItemInput{
		ProductID:     7,
		Description:   "Consulta",
		Quantity:      2,
		UnitPrice:     50.00,
		DiscountMode:  DiscountPercent,
		DiscountValue: 10,
	})

	if item.Discount != 10.00 {
		t.Fatalf("expected discount 10.00 got %.2f", item.Discount)
	}
	if item.NetSubtotal != 90.00 {
		t.Fatalf("expected net subtotal 90.00 got %.2f", item.NetSubtotal)
	}

	totals := l.ComputeTotals()
	if totals.Gross != 100.00 || totals.Discount != 10.00 || totals.Net != 90.00 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestAddItemDuplicateRejected(t *testing.T) {
	l := New(Editable, nil)
	mustAdd(t, l, AddItemInput{ProductID: 7, Quantity: 2, UnitPrice: 50, DiscountMode: DiscountPercent, DiscountValue: 10})

	_, err := l.AddItem(AddItemInput{ProductID: 7, Quantity: 1, UnitPrice: 50, DiscountMode: DiscountPercent})
	if !errors.Is(err, ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct got %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("ledger should still hold exactly one item, has %d", l.Len())
	}
	totals := l.ComputeTotals()
	if totals.Gross != 100.00 {
		t.Fatalf("rejected add must not change totals, gross=%.2f", totals.Gross)
	}
}

func TestAddItemValidationOrder(t *testing.T) {
	cases := []struct {
		name string
		in   AddItemInput
		want error
	}{
		{"no product", AddItemInput{ProductID: 0, Quantity: 1, UnitPrice: 10}, ErrNoProduct},
		{"zero quantity", AddItemInput{ProductID: 1, Quantity: 0, UnitPrice: 10}, ErrInvalidQuantity},
		{"negative quantity", AddItemInput{ProductID: 1, Quantity: -3, UnitPrice: 10}, ErrInvalidQuantity},
		{"negative price", AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: -1}, ErrInvalidPrice},
		{"negative discount", AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10, DiscountMode: DiscountAmount, DiscountValue: -5}, ErrNegativeDiscount},
		{"percent above 100", AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10, DiscountMode: DiscountPercent, DiscountValue: 150}, ErrPercentRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(Editable, nil)
			_, err := l.AddItem(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, err)
			}
			if l.Len() != 0 {
				t.Fatalf("rejected add must not mutate the ledger")
			}
		})
	}
}

func TestAddItemInputResets(t *testing.T) {
	view := newRecordingView()
	l := New(Editable, view)

	l.AddItem(AddItemInput{ProductID: 1, Quantity: 0, UnitPrice: 10})
	if len(view.quantityResets) != 1 || view.quantityResets[0] != 1 {
		t.Fatalf("invalid quantity should reset the field to 1, got %v", view.quantityResets)
	}

	l.AddItem(AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10, DiscountMode: DiscountAmount, DiscountValue: -2})
	l.AddItem(AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10, DiscountMode: DiscountPercent, DiscountValue: 120})
	if len(view.discountResets) != 2 {
		t.Fatalf("invalid discounts should reset the field to 0, got %v", view.discountResets)
	}
	for _, v := range view.discountResets {
		if v != 0 {
			t.Fatalf("discount reset value should be 0, got %v", v)
		}
	}
}

func TestAmountDiscountClampProceeds(t *testing.T) {
	view := newRecordingView()
	l := New(Editable, view)

	item := mustAdd(t, l, AddItemInput{
		ProductID:     3,
		Quantity:      1,
		UnitPrice:     40,
		DiscountMode:  DiscountAmount,
		DiscountValue: 75,
	})
	if item.Discount != 40 {
		t.Fatalf("discount should clamp to the gross line, got %.2f", item.Discount)
	}
	if item.NetSubtotal != 0 {
		t.Fatalf("net subtotal should be 0 after a full clamp, got %.2f", item.NetSubtotal)
	}
	if len(view.warnings) != 1 {
		t.Fatalf("clamp should surface exactly one warning, got %v", view.warnings)
	}
	if len(view.discountSets) != 1 || view.discountSets[0] != 40 {
		t.Fatalf("clamp should correct the input field to 40, got %v", view.discountSets)
	}
}

func TestAmountDiscountZeroGross(t *testing.T) {
	l := New(Editable, nil)
	item := mustAdd(t, l, AddItemInput{
		ProductID:     4,
		Quantity:      1,
		UnitPrice:     0, // complimentary item
		DiscountMode:  DiscountAmount,
		DiscountValue: 20,
	})
	if item.Discount != 0 {
		t.Fatalf("discount on a zero gross line must be forced to 0, got %.2f", item.Discount)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	view := newRecordingView()
	l := New(Editable, view)
	mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 100})
	mustAdd(t, l, AddItemInput{ProductID: 2, Quantity: 1, UnitPrice: 50})

	l.RemoveItem(1)
	if l.Len() != 1 {
		t.Fatalf("expected 1 item after removal, got %d", l.Len())
	}
	before := l.ComputeTotals()

	l.RemoveItem(1) // absent: no-op
	l.RemoveItem(99)
	after := l.ComputeTotals()
	if l.Len() != 1 || before != after {
		t.Fatalf("removing an absent item must leave ledger and totals unchanged")
	}
	if len(view.removed) != 1 {
		t.Fatalf("only one row removal should reach the view, got %v", view.removed)
	}
}

func TestTotalsRecomputedFromScratch(t *testing.T) {
	l := New(Editable, nil)
	mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 3, UnitPrice: 25, DiscountMode: DiscountAmount, DiscountValue: 5})
	mustAdd(t, l, AddItemInput{ProductID: 2, Quantity: 1, UnitPrice: 200, DiscountMode: DiscountPercent, DiscountValue: 50})

	first := l.ComputeTotals()
	second := l.ComputeTotals()
	if first != second {
		t.Fatalf("ComputeTotals must be idempotent: %+v vs %+v", first, second)
	}
	if first.Gross != 275 || first.Discount != 105 || first.Net != 170 {
		t.Fatalf("unexpected totals %+v", first)
	}
}

func TestChangePolicy(t *testing.T) {
	cases := []struct {
		name          string
		net, paid     float64
		change        float64
		displayChange float64
	}{
		{"overpaid", 100, 150, 50, 50},
		{"underpaid floored for display", 100, 60, -40, 0},
		{"zero zero", 0, 0, 0, 0},
		{"complimentary with tender", 0, 20, 20, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(Editable, nil)
			if tc.net > 0 {
				mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: tc.net})
			} else {
				mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 0})
			}
			l.SetPayments(Payments{Cash: tc.paid})

			totals := l.ComputeTotals()
			if totals.Change != tc.change {
				t.Fatalf("expected change %.2f got %.2f", tc.change, totals.Change)
			}
			if totals.DisplayChange() != tc.displayChange {
				t.Fatalf("expected displayed change %.2f got %.2f", tc.displayChange, totals.DisplayChange())
			}
		})
	}
}

func TestPaymentsSummed(t *testing.T) {
	l := New(Editable, nil)
	mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 100})
	l.SetPayments(Payments{Cash: 20, Card: 30, Transfer: 40, Other: 25})

	totals := l.ComputeTotals()
	if totals.Paid != 115 {
		t.Fatalf("expected paid 115 got %.2f", totals.Paid)
	}
	if totals.Change != 15 {
		t.Fatalf("expected change 15 got %.2f", totals.Change)
	}
}

func TestSubmitEnabledGating(t *testing.T) {
	view := newRecordingView()
	l := New(Editable, view)
	if view.submitEnabled {
		t.Fatalf("submit must be disabled for an empty ledger")
	}
	mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10})
	if !view.submitEnabled {
		t.Fatalf("submit should be enabled once an item exists")
	}
	l.RemoveItem(1)
	if view.submitEnabled {
		t.Fatalf("submit must be disabled again when the ledger empties")
	}
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	l := New(ReadOnly, nil)
	_, err := l.AddItem(AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10})
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly got %v", err)
	}
}

func TestHydrateReadOnly(t *testing.T) {
	view := newRecordingView()
	l := New(ReadOnly, view)
	l.Hydrate([]HydrationItem{{
		ProductID:       3,
		Quantity:        1,
		DescriptionItem: "Consulta",
		UnitPrice:       200,
		Discount:        0,
		NetSubtotal:     200,
	}})

	if l.Len() != 1 {
		t.Fatalf("expected one hydrated item, got %d", l.Len())
	}
	item, ok := l.Item(3)
	if !ok || item.Description != "Consulta" {
		t.Fatalf("hydrated item missing or not normalized: %+v", item)
	}
	if view.removable[3] {
		t.Fatalf("read-only rows must not carry a remove control")
	}
	if view.submitEnabled {
		t.Fatalf("submit must stay disabled in read-only mode")
	}

	l.RemoveItem(3)
	if l.Len() != 1 {
		t.Fatalf("read-only ledger must ignore removals")
	}
}

func TestHydrateDescriptionFallback(t *testing.T) {
	l := New(Editable, nil)
	l.Hydrate([]HydrationItem{
		{ProductID: 1, Quantity: 1, DescriptionProd: "Plantillas", UnitPrice: 150, NetSubtotal: 150},
		{ProductID: 2, Quantity: 1, UnitPrice: 80, NetSubtotal: 80},
	})

	first, _ := l.Item(1)
	if first.Description != "Plantillas" {
		t.Fatalf("descripcion_prod should be accepted, got %q", first.Description)
	}
	second, _ := l.Item(2)
	if second.Description != "Producto/Servicio" {
		t.Fatalf("missing description should fall back to the placeholder, got %q", second.Description)
	}
}

func TestHydrateClearsExistingState(t *testing.T) {
	l := New(Editable, nil)
	mustAdd(t, l, AddItemInput{ProductID: 9, Quantity: 5, UnitPrice: 10})

	l.Hydrate([]HydrationItem{{ProductID: 1, Quantity: 1, DescriptionItem: "Ajuste", UnitPrice: 300, NetSubtotal: 300}})
	if l.Len() != 1 {
		t.Fatalf("hydration must replace prior state, got %d items", l.Len())
	}
	if _, ok := l.Item(9); ok {
		t.Fatalf("pre-hydration item should be gone")
	}
	totals := l.ComputeTotals()
	if totals.Gross != 300 {
		t.Fatalf("totals should reflect only hydrated items, gross=%.2f", totals.Gross)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	l := New(Editable, nil)
	for _, id := range []int{5, 2, 9} {
		mustAdd(t, l, AddItemInput{ProductID: id, Quantity: 1, UnitPrice: 10})
	}
	items := l.Items()
	for i, want := range []int{5, 2, 9} {
		if items[i].ProductID != want {
			t.Fatalf("insertion order not preserved: %v", items)
		}
	}
}

func TestParseDiscountMode(t *testing.T) {
	if ParseDiscountMode("%") != DiscountPercent {
		t.Fatalf("%% should parse as percent")
	}
	if ParseDiscountMode("$") != DiscountAmount {
		t.Fatalf("$ should parse as amount")
	}
	if ParseDiscountMode("") != DiscountAmount {
		t.Fatalf("unknown selector values fall back to amount")
	}
}
