package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/dashboard"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printTable writes a title line and the rows aligned under their column names.
func printTable(w io.Writer, t *dashboard.Table) error {
	if t == nil {
		return nil
	}

	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}

	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}

	tw := newTabWriter(w)

	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))

	cells := make([]string, len(t.Columns))

	for _, row := range t.Rows {
		for i, col := range t.Columns {
			cells[i] = row.String(col)
		}

		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

func printMetrics(w io.Writer, metrics []dashboard.Metric) error {
	tw := newTabWriter(w)

	for _, m := range metrics {
		fmt.Fprintf(tw, "%s:\t%v\n", m.Label, m.Value)
	}

	return tw.Flush()
}

func printQueries(w io.Writer, queries []dashboard.QueryInfo) error {
	tw := newTabWriter(w)

	fmt.Fprintln(tw, "SLUG\tNAME\tNOTE")

	for _, q := range queries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", q.Slug, q.Name, q.Note)
	}

	return tw.Flush()
}
