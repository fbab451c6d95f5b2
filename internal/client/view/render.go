package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/timex"
)

//go:embed templates/*.html
var templateFS embed.FS

var fragments = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const timestampWidth = 19

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatRate renders a rate as the shortest decimal that round-trips.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// FormatAmount renders money as "$12.50".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatCreatedAt shows an account timestamp as "2006-01-02 15:04". Values in
// an unknown layout are shown unchanged.
func FormatCreatedAt(v string, ok bool) string {
	if !ok || v == "" {
		return "-"
	}
	t, err := timex.ParseTimestamp(v, time.UTC)
	if err != nil {
		return v
	}
	return t.Format("2006-01-02 15:04")
}

func execute(name string, data any) string {
	var buf bytes.Buffer
	// the templates only range over plain string fields
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("view: template %s: %v", name, err))
	}
	return buf.String()
}

func parkedRows(cars []models.ParkedCar) []ParkedRow {
	rows := make([]ParkedRow, 0, len(cars))
	for _, car := range cars {
		var lines []string
		if car.Comments != "" {
			lines = strings.Split(car.Comments, "\n")
		}
		rows = append(rows, ParkedRow{
			Spot:         strconv.Itoa(car.Spot),
			Plate:        orDash(car.Plate),
			TimeIn:       truncate(car.TimeIn, timestampWidth),
			CommentLines: lines,
		})
	}
	return rows
}

func transactionRows(s *models.State) []TransactionRow {
	txs := s.TransactionsNewestFirst()
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		spot := "-"
		if tx.Spot.Valid {
			spot = strconv.FormatInt(tx.Spot.Int64, 10)
		}
		rows = append(rows, TransactionRow{
			Spot:    spot,
			Plate:   orDash(tx.Plate),
			TimeIn:  truncate(tx.TimeIn, timestampWidth),
			TimeOut: truncate(tx.TimeOut, timestampWidth),
			Amount:  FormatAmount(tx.Amount),
		})
	}
	return rows
}

// Render replaces every state-dependent part of p with what s describes and
// resets the remove form inputs and the search area.
func Render(p *Page, s *models.State) {
	p.LoginVisible = false
	p.DashboardVisible = true
	p.LogoutVisible = true

	role := "User"
	if s.IsAdmin {
		role = "Admin"
	}
	p.Summary = Summary{
		User:        s.CurrentUser,
		Role:        role,
		Capacity:    strconv.Itoa(s.Capacity),
		Available:   strconv.Itoa(s.AvailableSpots),
		Rate:        fmt.Sprintf("%.2f", s.RatePerHour),
		ParkedCount: len(s.ParkedCars),
	}

	p.AdminVisible = s.IsAdmin
	p.RateInput = FormatRate(s.RatePerHour)

	p.ParkedRows = parkedRows(s.ParkedCars)
	p.ParkedHTML = execute("parked", p.ParkedRows)
	p.TransactionRows = transactionRows(s)
	p.TransactionsHTML = execute("transactions", p.TransactionRows)

	p.Remove.Hours = ""
	p.Remove.Amount = ""
	RenderSearchMessage(p, SearchPlaceholder)
}

// RenderSearchMessage replaces the search area with a muted message.
func RenderSearchMessage(p *Page, msg string) {
	p.SearchText = msg
	p.SearchMuted = true
	p.SearchHits = nil
	p.SearchHTML = ""
}

// RenderSearchHits lists matching cars with their own note/remove actions.
func RenderSearchHits(p *Page, cars []models.ParkedCar) {
	if len(cars) == 0 {
		RenderSearchMessage(p, SearchNoMatch)
		return
	}
	hits := make([]SearchHit, 0, len(cars))
	for _, car := range cars {
		plate := car.Plate
		if plate == "" {
			plate = "Unknown"
		}
		hits = append(hits, SearchHit{
			Plate:  plate,
			Spot:   strconv.Itoa(car.Spot),
			TimeIn: truncate(car.TimeIn, timestampWidth),
		})
	}
	p.SearchText = ""
	p.SearchMuted = false
	p.SearchHits = hits
	p.SearchHTML = execute("search", hits)
}

// RenderUsers fills the users table.
func RenderUsers(p *Page, users []models.User) {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: FormatCreatedAt(u.CreatedAt.String, u.CreatedAt.Valid),
		})
	}
	p.Users.Rows = rows
	p.Users.Error = ""
	p.Users.HTML = execute("users", rows)
}

// RenderUsersError replaces the users table with a single error row.
func RenderUsersError(p *Page, msg string) {
	p.Users.Rows = nil
	p.Users.Error = msg
	p.Users.HTML = execute("users-error", msg)
}
