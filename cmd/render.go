package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"collections-agent/internal/domain"
)

var (
	userStyle   = color.New(color.FgCyan, color.Bold)
	aiStyle     = color.New(color.FgGreen)
	statusStyle = color.New(color.FgYellow)
	amountStyle = color.New(color.FgRed, color.Bold)
	clearStyle  = color.New(color.FgGreen)
)

func printBorrowers(w io.Writer, borrowers []domain.Borrower) {
	for _, b := range borrowers {
		amount := "$" + strconv.FormatFloat(b.OutstandingAmount, 'f', 2, 64)
		if b.OutstandingAmount > 0 {
			amount = amountStyle.Sprint(amount)
		} else {
			amount = clearStyle.Sprint(amount)
		}
		fmt.Fprintf(w, "%3d  %-20s %s  %s  %s\n", b.ID, b.Name, amount, b.Phone, b.Email)
	}
}

func printTranscript(w io.Writer, msgs []domain.Message) {
	for _, m := range msgs {
		switch m.Sender {
		case domain.SenderUser:
			fmt.Fprintf(w, "%s %s\n", userStyle.Sprint("you:"), m.Text)
		case domain.SenderAI:
			fmt.Fprintf(w, "%s %s\n", aiStyle.Sprint("ai:"), m.Text)
		default:
			fmt.Fprintf(w, "  %s\n", statusStyle.Sprint(m.Text))
		}
	}
}

func printCounters(w io.Writer, c domain.Counters) {
	fmt.Fprintf(w, "sent: %d  received: %d\n", c.Sent, c.Received)
}
