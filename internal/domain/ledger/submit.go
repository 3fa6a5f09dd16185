package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// FailureKind classifies why a submission did not settle.
type FailureKind int

const (
	// FailureValidation is a local rejection; no network call was made.
	FailureValidation FailureKind = iota
	// FailureTransport is a network-level error reaching the endpoint.
	FailureTransport
	// FailureServer is an HTTP error status or a payload reporting failure.
	FailureServer
	// FailureParse is a 2xx response whose body could not be decoded.
	FailureParse
)

// SubmitError is a failed submission outcome. The submit control is left in
// a retryable state; no retry is attempted automatically.
type SubmitError struct {
	Kind    FailureKind
	Message string
}

func (e *SubmitError) Error() string {
	return e.Message
}

// Outcome is a settled submission.
type Outcome struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	PDFURL         string `json:"pdf_url"`
	ViewReceiptURL string `json:"view_receipt_url"`
}

// SubmitForm carries the receipt fields that accompany the line items in the
// submission payload.
type SubmitForm struct {
	PatientID        int
	PractitionerID   int
	Date             string
	OtherPaymentDesc string
	Notes            string
}

// Submitter posts a finished ledger to the receipt submission endpoint. The
// payload is form encoded with the line items JSON-serialized under
// recibo_detalles_json, matching what the server-rendered receipt form sends.
type Submitter struct {
	endpoint string
	client   *http.Client
}

// NewSubmitter creates a submitter for the given endpoint. A nil client
// falls back to a default http.Client; the call carries no timeout of its
// own, cancellation is the caller's context.
func NewSubmitter(endpoint string, client *http.Client) *Submitter {
	if client == nil {
		client = &http.Client{}
	}
	return &Submitter{endpoint: endpoint, client: client}
}

// Submit serializes the ledger and performs a single request against the
// endpoint. An editable ledger with no items is rejected locally without any
// network call. While the request is outstanding the submit control is
// disabled, which is the only guard against a second concurrent submission
// from the same ledger.
func (s *Submitter) Submit(ctx context.Context, l *Ledger, form SubmitForm) (*Outcome, error) {
	if l.mode != Editable {
		return nil, &SubmitError{Kind: FailureValidation, Message: "cannot submit a read-only receipt"}
	}
	if l.Len() == 0 {
		return nil, &SubmitError{Kind: FailureValidation, Message: "cannot save an empty receipt"}
	}
	if l.submitting {
		return nil, &SubmitError{Kind: FailureValidation, Message: "a submission is already in progress"}
	}

	l.submitting = true
	l.view.SetSubmitEnabled(false)
	defer func() {
		l.submitting = false
		l.view.SetSubmitEnabled(l.Len() > 0)
	}()

	totals := l.ComputeTotals()
	detalles, err := json.Marshal(l.Items())
	if err != nil {
		return nil, &SubmitError{Kind: FailureValidation, Message: "could not serialize receipt items"}
	}

	payload := url.Values{}
	payload.Set("id_px", strconv.Itoa(form.PatientID))
	payload.Set("id_dr", strconv.Itoa(form.PractitionerID))
	payload.Set("fecha", form.Date)
	payload.Set("recibo_detalles_json", string(detalles))
	payload.Set("subtotal_bruto", formatAmount(totals.Gross))
	payload.Set("descuento_total", formatAmount(totals.Discount))
	payload.Set("total_neto", formatAmount(totals.Net))
	payload.Set("pago_efectivo", formatAmount(l.payments.Cash))
	payload.Set("pago_tarjeta", formatAmount(l.payments.Card))
	payload.Set("pago_transferencia", formatAmount(l.payments.Transfer))
	payload.Set("pago_otro", formatAmount(l.payments.Other))
	payload.Set("pago_otro_desc", form.OtherPaymentDesc)
	payload.Set("notas", form.Notes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, &SubmitError{Kind: FailureTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SubmitError{Kind: FailureTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Message string `json:"message"`
		}
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			msg = body.Message
		}
		return nil, &SubmitError{Kind: FailureServer, Message: msg}
	}

	var outcome Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return nil, &SubmitError{Kind: FailureParse, Message: "could not parse the server response"}
	}
	if !outcome.Success {
		msg := outcome.Message
		if msg == "" {
			msg = "the server reported a failure processing the receipt"
		}
		return nil, &SubmitError{Kind: FailureServer, Message: msg}
	}
	return &outcome, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
