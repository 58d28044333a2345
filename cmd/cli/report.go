package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/tournament/internal/store"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newReportCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "report <dir>",
		Short: "Tabulate the stored records by instance and configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			all, err := store.New(args[0]).LoadAll()
			if err != nil {
				return err
			}
			return writeReport(out, all)
		},
	}
}

func writeReport(out io.Writer, all map[uint64]store.Records) error {
	columns := make(map[string]bool)
	for _, records := range all {
		for key := range records {
			columns[key] = true
		}
	}
	keys := sortedKeys(columns)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "n\t%s\n", strings.Join(keys, "\t"))
	for _, teams := range sortedKeys(all) {
		cells := lo.Map(keys, func(key string, _ int) string {
			record, ok := all[teams][key]
			if !ok {
				return "-"
			}
			tag, _ := search.ParseTag(key)
			return reportCell(record, tag.Objective && record.Obj != nil)
		})
		fmt.Fprintf(writer, "%d\t%s\n", teams, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

// reportCell shows UNSAT for a proof of infeasibility, N/A when the search
// ran out of time, and otherwise the time in seconds. An objective follows
// the time, starred when proven optimal.
func reportCell(record search.Record, showObjective bool) string {
	switch {
	case len(record.Sol) == 0 && record.Optimal:
		return "UNSAT"
	case len(record.Sol) == 0:
		return "N/A"
	case !showObjective:
		return fmt.Sprint(record.Time)
	case record.Optimal:
		return fmt.Sprintf("%d (%d*)", record.Time, *record.Obj)
	default:
		return fmt.Sprintf("%d (%d)", record.Time, *record.Obj)
	}
}
