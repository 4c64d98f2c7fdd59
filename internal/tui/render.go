package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func headerText(meta entity.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow::b]%s[-::-]\n", tview.Escape(orDash(meta.Event)))
	fmt.Fprintf(&b, "%s\n", tview.Escape(orDash(meta.Distance)))
	b.WriteString(tview.Escape(meta.Extras))
	return b.String()
}

func cardText(l entity.LaneRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n\n", tview.Escape(l.Name))
	rows := []struct{ label, value string }{
		{"Startnr", l.Bib},
		{"Categorie", l.Category},
		{"Land", l.Nation},
		{"PR", l.PersonalRecord},
		{"ST", l.SeasonBest},
		{"Tijd", l.RaceTime},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "[gray]%-10s[-] %s\n", r.label, tview.Escape(r.value))
	}
	return b.String()
}
