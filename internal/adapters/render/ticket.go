package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

const qrImageSize = 256

// printableTicket is the self-contained HTML handed back for "assign &
// print". The QR image is inlined as a data URI so the page prints without
// any further requests.
var printableTicket = template.Must(template.New("ticket").Parse(`<div style="border: 2px solid #333; padding: 20px; margin: 10px; max-width: 400px; font-family: Arial, sans-serif;">
  <h2 style="text-align: center; color: #2c5282;">{{.Event.Name}}</h2>
  <hr>
  <p><strong>Guest:</strong> {{.GuestName}}</p>
  <p><strong>Sponsored by:</strong> {{.CompanyName}}</p>
  <p><strong>Ticket #:</strong> {{.TicketNumber}}</p>
  <p style="text-align: center;"><img src="data:image/png;base64,{{.QRBase64}}" alt="Ticket QR code" width="{{.QRSize}}" height="{{.QRSize}}"></p>
  <hr>
  <p><strong>Date:</strong> {{.Event.Date}}</p>
  <p><strong>Venue:</strong> {{.Event.Venue}}</p>
  {{if .Event.Address}}<p><strong>Address:</strong> {{.Event.Address}}</p>{{end}}
  <p><strong>Doors Open:</strong> {{.Event.DoorsOpen}}</p>
  <p><strong>Dinner Served:</strong> {{.Event.DinnerServed}}</p>
  {{if .Event.KeynoteSpeaker}}<p><strong>Keynote Speaker:</strong> {{.Event.KeynoteSpeaker}}</p>{{end}}
</div>`))

type ticketRenderer struct{}

// NewTicketRenderer returns a TicketRenderer that produces the printable
// HTML ticket with an embedded QR code of the ticket number.
func NewTicketRenderer() domain.TicketRenderer {
	return &ticketRenderer{}
}

func (r *ticketRenderer) RenderPrintable(ticket *domain.SponsorTicket, companyName string, event domain.EventDetails) (string, error) {
	png, err := qrcode.Encode(ticket.TicketNumber, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode ticket qr: %w", err)
	}

	guestName := ticket.RecipientName
	if guestName == "" {
		guestName = "TBD"
	}

	var buf bytes.Buffer
	err = printableTicket.Execute(&buf, struct {
		Event        domain.EventDetails
		GuestName    string
		CompanyName  string
		TicketNumber string
		QRBase64     string
		QRSize       int
	}{
		Event:        event,
		GuestName:    guestName,
		CompanyName:  companyName,
		TicketNumber: ticket.TicketNumber,
		QRBase64:     base64.StdEncoding.EncodeToString(png),
		QRSize:       qrImageSize,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render ticket: %w", err)
	}
	return buf.String(), nil
}
