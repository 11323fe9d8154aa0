package report

// Statement is the printable rental document. Before the settlement is
// locked it carries the current estimate; afterwards it reproduces the
// locked settlement line by line.
type Statement struct {
	DocumentNumber string `json:"document_number"`
	IssuedAt       string `json:"issued_at"`
	Mode           string `json:"mode"` // estimate or settlement

	ClientName    string `json:"client_name"`
	LicenceNumber string `json:"licence_number,omitempty"`
	Vehicle       string `json:"vehicle"`
	Registration  string `json:"registration"`

	StartDate string `json:"start_date"`
	StartTime string `json:"start_time,omitempty"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time,omitempty"`
	Days      int    `json:"days"`

	Lines          []StatementLine `json:"lines"`
	Total          float64         `json:"total"`
	CurrencyCode   string          `json:"currency_code,omitempty"`
	CurrencySymbol string          `json:"currency_symbol,omitempty"`
}

type StatementLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}
