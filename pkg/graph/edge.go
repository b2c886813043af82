package graph

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Edge is an aggregated relationship between two nodes. All filings that map
// to the same (From, To, Label) triple are folded into one Edge.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount,omitempty"`
	Title  string  `json:"title,omitempty"`
}

var amountPrinter = message.NewPrinter(language.English)

func newEdge(t *edgeTotals, trackAmounts bool) Edge {
	amount := t.amount
	if !trackAmounts {
		amount = 0
	}

	return Edge{
		From:   t.key.from,
		To:     t.key.to,
		Label:  t.key.label,
		Value:  EdgeWeight(t.count, amount),
		Count:  t.count,
		Amount: amount,
		Title:  edgeTooltip(t.key.label, t.count, amount, trackAmounts),
	}
}

// EdgeWeight is the display weight of an edge: the filing count plus a
// log-compressed amount term, rounded to two decimals and floored at 1.
// It never decreases when either count or amount grows.
func EdgeWeight(count int, amount float64) float64 {
	w := float64(max(count, 0)) + math.Log10(1+clampAmount(amount))
	w = math.Round(w*100) / 100
	return math.Max(1, w)
}

func edgeTooltip(label string, count int, amount float64, trackAmounts bool) string {
	noun := "filings"
	if count == 1 {
		noun = "filing"
	}

	title := fmt.Sprintf("%s · %d %s", label, count, noun)
	if trackAmounts {
		title += amountPrinter.Sprintf(" · $%.2f", amount)
	}
	return title
}
