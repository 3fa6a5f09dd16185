package report

import (
	"bytes"
	"html/template"
)

// ReceiptData is the model the receipt PDF template renders.
type ReceiptData struct {
	ClinicName    string
	ClinicAddress string
	ClinicPhone   string
	Folio         string
	Date          string
	PatientName   string
	Practitioner  string
	Items         []ReceiptItem
	GrossSubtotal string
	TotalDiscount string
	NetTotal      string
	Paid          string
	Change        string
	Balance       string
	Status        string
	Payments      []ReceiptPaymentRow
	Notes         string
}

// ReceiptItem is one rendered line of the receipt.
type ReceiptItem struct {
	Quantity    int
	Description string
	UnitPrice   string
	Discount    string
	NetSubtotal string
}

// ReceiptPaymentRow is one rendered entry of the payment history.
type ReceiptPaymentRow struct {
	Date   string
	Method string
	Amount string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Recibo {{.Folio}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 24px; color: #222; }
  h1 { font-size: 18px; margin: 0; }
  .clinic { text-align: center; margin-bottom: 16px; }
  .meta { margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
  th, td { padding: 4px 6px; border-bottom: 1px solid #ccc; text-align: left; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; }
  .totals .label { text-align: right; font-weight: bold; }
  .status { font-weight: bold; }
  .notes { margin-top: 16px; font-style: italic; }
</style>
</head>
<body>
<div class="clinic">
  <h1>{{.ClinicName}}</h1>
  {{if .ClinicAddress}}<div>{{.ClinicAddress}}</div>{{end}}
  {{if .ClinicPhone}}<div>Tel: {{.ClinicPhone}}</div>{{end}}
</div>
<div class="meta">
  <div><strong>Folio:</strong> {{.Folio}}</div>
  <div><strong>Fecha:</strong> {{.Date}}</div>
  <div><strong>Paciente:</strong> {{.PatientName}}</div>
  <div><strong>Atendió:</strong> {{.Practitioner}}</div>
</div>
<table>
  <thead>
    <tr><th>Cant.</th><th>Descripción</th><th class="num">P. unitario</th><th class="num">Descuento</th><th class="num">Importe</th></tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr>
      <td>{{.Quantity}}</td>
      <td>{{.Description}}</td>
      <td class="num">{{.UnitPrice}}</td>
      <td class="num">{{.Discount}}</td>
      <td class="num">{{.NetSubtotal}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
<table class="totals">
  <tr><td class="label">Subtotal:</td><td class="num">{{.GrossSubtotal}}</td></tr>
  <tr><td class="label">Descuento:</td><td class="num">{{.TotalDiscount}}</td></tr>
  <tr><td class="label">Total:</td><td class="num">{{.NetTotal}}</td></tr>
  <tr><td class="label">Pagado:</td><td class="num">{{.Paid}}</td></tr>
  {{if .Change}}<tr><td class="label">Cambio:</td><td class="num">{{.Change}}</td></tr>{{end}}
  <tr><td class="label">Saldo pendiente:</td><td class="num">{{.Balance}}</td></tr>
  <tr><td class="label">Estado:</td><td class="num status">{{.Status}}</td></tr>
</table>
{{if .Payments}}
<h3>Historial de pagos</h3>
<table>
  <thead><tr><th>Fecha</th><th>Método</th><th class="num">Monto</th></tr></thead>
  <tbody>
    {{range .Payments}}
    <tr><td>{{.Date}}</td><td>{{.Method}}</td><td class="num">{{.Amount}}</td></tr>
    {{end}}
  </tbody>
</table>
{{end}}
{{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`))

// RenderReceiptHTML renders the receipt PDF template.
func RenderReceiptHTML(data *ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
