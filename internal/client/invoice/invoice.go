// Package invoice renders printable text invoices from completed
// transactions: one for a single transaction and a daily summary.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/timex"
)

const (
	singleWidth = 50
	dailyWidth  = 60

	stampLayout = "2006-01-02 15:04:05"
)

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

func status(tx models.Transaction) string {
	if tx.Paid {
		return "PAID"
	}
	return "UNPAID"
}

func spotText(tx models.Transaction) string {
	if !tx.Spot.Valid {
		return "-"
	}
	return strconv.FormatInt(tx.Spot.Int64, 10)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Single renders the invoice of one transaction.
func Single(tx models.Transaction, generatedAt time.Time) string {
	comments := tx.Comments
	if comments == "" {
		comments = "None"
	}

	var b strings.Builder
	fmt.Fprintln(&b, rule("=", singleWidth))
	fmt.Fprintf(&b, "%27s\n", "INVOICE")
	fmt.Fprintln(&b, rule("=", singleWidth))
	fmt.Fprintf(&b, "Date: %s\n\n", generatedAt.Format(stampLayout))
	fmt.Fprintf(&b, "Spot Number: %s\n", spotText(tx))
	fmt.Fprintf(&b, "License Plate: %s\n\n", tx.Plate)
	fmt.Fprintf(&b, "Time In:  %s\n", tx.TimeIn)
	fmt.Fprintf(&b, "Time Out: %s\n\n", tx.TimeOut)
	fmt.Fprintln(&b, rule("-", singleWidth))
	fmt.Fprintf(&b, "Amount Due:     $%.2f\n", tx.Amount)
	fmt.Fprintf(&b, "Payment Status: %s\n", status(tx))
	fmt.Fprintln(&b, rule("-", singleWidth))
	fmt.Fprintf(&b, "\nComments: %s\n\n", comments)
	fmt.Fprintln(&b, rule("=", singleWidth))
	fmt.Fprintln(&b, "Thank you for your business!")
	fmt.Fprintln(&b, rule("=", singleWidth))
	return b.String()
}

// Totals summarises a set of transactions.
type Totals struct {
	Count  int
	Total  float64
	Paid   float64
	Unpaid float64
}

// ForDay returns the transactions whose time_out falls on the calendar day of
// day in loc. Rows with an unparseable time_out are skipped.
func ForDay(txs []models.Transaction, day time.Time, loc *time.Location) []models.Transaction {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.In(loc).Date()

	var out []models.Transaction
	for _, tx := range txs {
		t, err := timex.ParseTimestamp(tx.TimeOut, loc)
		if err != nil {
			continue
		}
		ty, tm, td := t.In(loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, tx)
		}
	}
	return out
}

func Sum(txs []models.Transaction) Totals {
	t := Totals{Count: len(txs)}
	for _, tx := range txs {
		t.Total += tx.Amount
		if tx.Paid {
			t.Paid += tx.Amount
		}
	}
	t.Unpaid = t.Total - t.Paid
	return t
}

// Daily renders the summary of the transactions closed on day.
func Daily(txs []models.Transaction, day time.Time, loc *time.Location, generatedAt time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	rows := ForDay(txs, day, loc)
	totals := Sum(rows)

	var b strings.Builder
	fmt.Fprintln(&b, rule("=", dailyWidth))
	fmt.Fprintf(&b, "%33s\n", "DAILY INVOICE")
	fmt.Fprintf(&b, "%20s%s\n", "", day.In(loc).Format("Monday, January 02, 2006"))
	fmt.Fprintln(&b, rule("=", dailyWidth))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%-8s%-15s%-20s%-12s%-10s\n", "Spot", "Plate", "Time In", "Amount", "Status")
	fmt.Fprintln(&b, rule("-", dailyWidth))
	for _, tx := range rows {
		fmt.Fprintf(&b, "%-8s%-15s%-20s$%-11.2f%-10s\n",
			spotText(tx), tx.Plate, truncate(tx.TimeIn, 16), tx.Amount, status(tx))
	}
	fmt.Fprintln(&b, rule("-", dailyWidth))
	fmt.Fprintf(&b, "%-45s%d\n", "TOTAL TRANSACTIONS:", totals.Count)
	fmt.Fprintf(&b, "%-45s$%10.2f\n", "Total Amount:", totals.Total)
	fmt.Fprintf(&b, "%-45s$%10.2f\n", "Paid Amount:", totals.Paid)
	fmt.Fprintf(&b, "%-45s$%10.2f\n", "Unpaid Amount:", totals.Unpaid)
	fmt.Fprintln(&b, rule("=", dailyWidth))
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.In(loc).Format(stampLayout))
	fmt.Fprintln(&b, rule("=", dailyWidth))
	return b.String()
}

// FileName is the name under which a daily invoice for day is saved.
func FileName(day time.Time) string {
	return "daily_invoice_" + day.Format("2006-01-02") + ".txt"
}
