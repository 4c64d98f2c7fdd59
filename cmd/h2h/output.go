package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeDocument renders doc as JSON or YAML.
func writeDocument(w io.Writer, format string, doc any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}

// writeHeats prints the metadata block, one table row per heat and a summary line.
func writeHeats(w io.Writer, meta entity.Metadata, heats []entity.Heat, diag *parser.Diagnostics) error {
	fmt.Fprintln(w, meta.Event)
	fmt.Fprintln(w, meta.Distance)
	if meta.Extras != "" {
		fmt.Fprintln(w, meta.Extras)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RIT\tWT\tCAT\tLAND\tPR\tRD\tCAT\tLAND\tPR")
	for _, h := range heats {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.Number,
			h.LaneA.Name, h.LaneA.Category, h.LaneA.Nation, firstTime(h.LaneA),
			h.LaneB.Name, h.LaneB.Category, h.LaneB.Nation, firstTime(h.LaneB),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Klaar. Gevonden ritten: %d\n", len(heats))
	if diag != nil && diag.Discarded() > 0 {
		fmt.Fprintf(w, "Niet gekoppeld: %d wt, %d rd (%s)\n", diag.DiscardedA, diag.DiscardedB, strings.ToLower(string(diag.Strategy)))
	}
	return nil
}

// firstTime prefers the race time, then the season best, then the personal record.
func firstTime(l entity.LaneRecord) string {
	for _, t := range []string{l.RaceTime, l.SeasonBest, l.PersonalRecord} {
		if t != "" {
			return t
		}
	}
	return ""
}
