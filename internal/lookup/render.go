package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/internal/domain/types"
)

// RenderProfile writes p as a header followed by one row per event and
// discipline.
func RenderProfile(w io.Writer, p types.Profile) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n%s\n\n", p.Name, p.ID, regionLine(p)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT\tTYPE\tRESULT\tWORLD\tCONTINENT\tCOUNTRY")
	for _, ev := range p.Events {
		for _, row := range []struct {
			kind string
			res  *types.ResultView
		}{{string(record.Single), ev.Single}, {string(record.Average), ev.Average}} {
			if row.res == nil {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				ev.Name, row.kind, row.res.Formatted,
				cell(row.res.World), cell(row.res.Continent), cell(row.res.Country))
		}
	}
	return tw.Flush()
}

// RenderComparison writes both competitors and the fair and unfair tallies.
func RenderComparison(w io.Writer, c types.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\n", c.A.Name, c.B.Name)
	fmt.Fprintf(tw, "region\t%s\t%s\n", regionLine(c.A), regionLine(c.B))
	fmt.Fprintf(tw, "fair\t%d\t%d\n", c.Fair.A, c.Fair.B)
	fmt.Fprintf(tw, "unfair\t%d\t%d\n", c.Unfair.A, c.Unfair.B)
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nshared events: %s\nall events:    %s\n",
		eventList(c.Fair.Events), eventList(c.Unfair.Events))
	return err
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func regionLine(p types.Profile) string {
	parts := make([]string, 0, 3)
	if p.Country.Flag != "" {
		parts = append(parts, p.Country.Flag)
	}
	parts = append(parts, p.Country.Name)
	if p.Continent != "" {
		parts = append(parts, "("+p.Continent+")")
	}
	return strings.Join(parts, " ")
}

func cell(v types.StandingView) string {
	if !v.Ranked {
		return "-"
	}
	return fmt.Sprintf("#%d %s", v.Rank, v.Label)
}

func eventList(codes []string) string {
	if len(codes) == 0 {
		return "none"
	}
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = record.EventName(code)
	}
	return strings.Join(names, ", ")
}
