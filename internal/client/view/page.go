// Package view turns state snapshots into the dashboard page model: panel
// visibility, summary fields, the HTML table fragments and their row data.
//
// Render is a full replace. Calling it twice with the same snapshot yields
// the same page, and it discards in-progress secondary form input.
package view

// Placeholder and empty-table texts.
const (
	SearchPlaceholder = "Enter a plate to search."
	SearchNoMatch     = "No parked cars match that registration."
	NoCarsParked      = "No cars parked."
	NoTransactions    = "No transactions."
	NoUsers           = "No users."
)

type Summary struct {
	User        string
	Role        string
	Capacity    string
	Available   string
	Rate        string
	ParkedCount int
}

type ParkedRow struct {
	Spot         string
	Plate        string
	TimeIn       string
	CommentLines []string
}

type TransactionRow struct {
	Spot    string
	Plate   string
	TimeIn  string
	TimeOut string
	Amount  string
}

type UserRow struct {
	Username  string
	Role      string
	CreatedAt string
}

type SearchHit struct {
	Plate  string
	Spot   string
	TimeIn string
}

// RemoveForm is the remove-car modal.
type RemoveForm struct {
	Open   bool
	Spot   string
	Hours  string
	Amount string
}

// CommentForm is the comment modal. Label reads "Spot N - PLATE".
type CommentForm struct {
	Open  bool
	Label string
	Text  string
}

type UsersPanel struct {
	Open  bool
	Rows  []UserRow
	Error string
	HTML  string
}

type ResetPasswordForm struct {
	Open     bool
	Username string
}

// Page is everything the dashboard shows. HTML fields hold escaped markup
// ready for insertion; the Row slices carry the same data for text output.
type Page struct {
	LoginVisible     bool
	DashboardVisible bool
	LogoutVisible    bool

	LoginUsername string
	ParkPlate     string

	Summary      Summary
	AdminVisible bool
	RateInput    string

	ParkedRows       []ParkedRow
	ParkedHTML       string
	TransactionRows  []TransactionRow
	TransactionsHTML string

	SearchText  string
	SearchMuted bool
	SearchHits  []SearchHit
	SearchHTML  string

	Remove        RemoveForm
	Comment       CommentForm
	Users         UsersPanel
	AddUserOpen   bool
	ResetPassword ResetPasswordForm
}

// NewPage returns the page shown before any state is loaded.
func NewPage() *Page {
	return &Page{
		LoginVisible: true,
		SearchText:   SearchPlaceholder,
		SearchMuted:  true,
	}
}

// ShowLogin shows the login panel and hides the dashboard and logout control.
func ShowLogin(p *Page) {
	p.LoginVisible = true
	p.DashboardVisible = false
	p.LogoutVisible = false
}
