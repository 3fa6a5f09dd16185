package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newFilledLedger(t *testing.T) *Ledger {
	t.Helper()
	l := New(Editable, nil)
	mustAdd(t, l, AddItemInput{ProductID: 7, Description: "Consulta", Quantity: 2, UnitPrice: 50, DiscountMode: DiscountPercent, DiscountValue: 10})
	l.SetPayments(Payments{Cash: 90})
	return l
}

func TestSubmitEmptyLedgerNoNetworkCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	l := New(Editable, nil)
	sub := NewSubmitter(srv.URL, srv.Client())
	_, err := sub.Submit(context.Background(), l, SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureValidation {
		t.Fatalf("expected local validation failure, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("empty submission must not reach the network, got %d calls", calls)
	}
}

func TestSubmitReadOnlyRejected(t *testing.T) {
	l := New(ReadOnly, nil)
	sub := NewSubmitter("http://unused", nil)
	_, err := sub.Submit(context.Background(), l, SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureValidation {
		t.Fatalf("expected local validation failure, got %v", err)
	}
}

func TestSubmitSuccess(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		got = r.PostForm
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("expected Accept application/json, got %q", accept)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":          true,
			"message":          "Recibo guardado",
			"pdf_url":          "/recibos/15/pdf",
			"view_receipt_url": "/recibos/15",
		})
	}))
	defer srv.Close()

	l := newFilledLedger(t)
	sub := NewSubmitter(srv.URL, srv.Client())
	outcome, err := sub.Submit(context.Background(), l, SubmitForm{
		PatientID:      12,
		PractitionerID: 2,
		Date:           "15/03/2026",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if outcome.PDFURL != "/recibos/15/pdf" || outcome.ViewReceiptURL != "/recibos/15" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	if got.Get("id_px") != "12" || got.Get("fecha") != "15/03/2026" {
		t.Fatalf("payload header fields wrong: %v", got)
	}
	if got.Get("subtotal_bruto") != "100.00" || got.Get("descuento_total") != "10.00" || got.Get("total_neto") != "90.00" {
		t.Fatalf("hidden totals wrong: %v", got)
	}
	if got.Get("pago_efectivo") != "90.00" {
		t.Fatalf("payment fields wrong: %v", got)
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(got.Get("recibo_detalles_json")), &items); err != nil {
		t.Fatalf("recibo_detalles_json not parseable: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 7 || items[0].NetSubtotal != 90 {
		t.Fatalf("unexpected serialized items %+v", items)
	}
}

func TestSubmitHTTPErrorWithServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "faltan datos del paciente"})
	}))
	defer srv.Close()

	sub := NewSubmitter(srv.URL, srv.Client())
	_, err := sub.Submit(context.Background(), newFilledLedger(t), SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureServer {
		t.Fatalf("expected server failure, got %v", err)
	}
	if serr.Message != "faltan datos del paciente" {
		t.Fatalf("server message should be surfaced, got %q", serr.Message)
	}
}

func TestSubmitHTTPErrorUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	sub := NewSubmitter(srv.URL, srv.Client())
	_, err := sub.Submit(context.Background(), newFilledLedger(t), SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureServer {
		t.Fatalf("expected server failure, got %v", err)
	}
	if serr.Message != "HTTP 500" {
		t.Fatalf("expected synthesized status message, got %q", serr.Message)
	}
}

func TestSubmitSuccessFlagFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "paciente no encontrado"})
	}))
	defer srv.Close()

	sub := NewSubmitter(srv.URL, srv.Client())
	_, err := sub.Submit(context.Background(), newFilledLedger(t), SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureServer || serr.Message != "paciente no encontrado" {
		t.Fatalf("expected server failure with payload message, got %v", err)
	}
}

func TestSubmitMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	sub := NewSubmitter(srv.URL, srv.Client())
	_, err := sub.Submit(context.Background(), newFilledLedger(t), SubmitForm{})

	var serr *SubmitError
	if !errors.As(err, &serr) || serr.Kind != FailureParse {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestSubmitDisablesControlWhileOutstanding(t *testing.T) {
	view := newRecordingView()
	l := New(Editable, view)
	mustAdd(t, l, AddItemInput{ProductID: 1, Quantity: 1, UnitPrice: 10})

	seenDisabled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenDisabled = !view.submitEnabled
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	sub := NewSubmitter(srv.URL, srv.Client())
	if _, err := sub.Submit(context.Background(), l, SubmitForm{}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !seenDisabled {
		t.Fatalf("submit control must be disabled while the request is outstanding")
	}
	if !view.submitEnabled {
		t.Fatalf("submit control must be restored after the request settles")
	}
}

