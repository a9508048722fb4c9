package domain

// EventDetails describes the dinner itself; it appears on rendered tickets
// and in ticket emails. Values come from configuration.
type EventDetails struct {
	Name           string
	Date           string
	DoorsOpen      string
	DinnerServed   string
	EndTime        string
	KeynoteSpeaker string
	Venue          string
	Address        string
}

// TicketRenderer renders a printable ticket for a sponsor guest. It is an
// external collaborator of the ticket issuer; the core only needs the
// rendered document back.
type TicketRenderer interface {
	RenderPrintable(ticket *SponsorTicket, companyName string, event EventDetails) (string, error)
}
