package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteText prints the visible parts of p for a terminal.
func WriteText(w io.Writer, p *Page) error {
	if !p.DashboardVisible {
		_, err := fmt.Fprintln(w, "Not logged in. Use: login <username>")
		return err
	}

	s := p.Summary
	fmt.Fprintf(w, "User: %s (%s)  Capacity: %s  Available: %s  Rate: $%s/h  Parked: %d\n",
		s.User, s.Role, s.Capacity, s.Available, s.Rate, s.ParkedCount)

	fmt.Fprintln(w, "\nParked cars")
	tw := newTable(w)
	fmt.Fprintln(tw, "SPOT\tPLATE\tTIME IN\tCOMMENTS")
	if len(p.ParkedRows) == 0 {
		fmt.Fprintln(tw, NoCarsParked)
	}
	for _, r := range p.ParkedRows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Spot, r.Plate, r.TimeIn, strings.Join(r.CommentLines, " / "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTransactions")
	tw = newTable(w)
	fmt.Fprintln(tw, "#\tSPOT\tPLATE\tTIME IN\tTIME OUT\tAMOUNT")
	if len(p.TransactionRows) == 0 {
		fmt.Fprintln(tw, NoTransactions)
	}
	for i, r := range p.TransactionRows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, r.Spot, r.Plate, r.TimeIn, r.TimeOut, r.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return WriteSearch(w, p)
}

// WriteSearch prints the search area.
func WriteSearch(w io.Writer, p *Page) error {
	if len(p.SearchHits) == 0 {
		_, err := fmt.Fprintf(w, "\nSearch: %s\n", p.SearchText)
		return err
	}
	fmt.Fprintln(w, "\nSearch results")
	tw := newTable(w)
	for _, h := range p.SearchHits {
		fmt.Fprintf(tw, "%s\tspot %s\t%s\n", h.Plate, h.Spot, h.TimeIn)
	}
	return tw.Flush()
}

// WriteUsers prints the users panel.
func WriteUsers(w io.Writer, p *Page) error {
	if p.Users.Error != "" {
		_, err := fmt.Fprintln(w, p.Users.Error)
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "USERNAME\tROLE\tCREATED")
	if len(p.Users.Rows) == 0 {
		fmt.Fprintln(tw, NoUsers)
	}
	for _, r := range p.Users.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Username, r.Role, r.CreatedAt)
	}
	return tw.Flush()
}
