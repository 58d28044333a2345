package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/limaJavier/tournament/internal/store"
	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newCheckCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dir>",
		Short: "Verify every stored record against the tournament rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			all, err := store.New(args[0]).LoadAll()
			if err != nil {
				return err
			}

			invalid := 0
			for _, teams := range sortedKeys(all) {
				records := all[teams]
				for _, key := range sortedKeys(records) {
					if err := checkRecord(teams, records[key]); err != nil {
						invalid++
						fmt.Fprintf(out, "%d\t%s\tINVALID: %v\n", teams, key, err)
						continue
					}
					fmt.Fprintf(out, "%d\t%s\tVALID\n", teams, key)
				}
			}

			if invalid > 0 {
				return &exitError{code: exitInvalid}
			}
			return nil
		},
	}
}

// checkRecord verifies a record is one of the allowed shapes and that its
// schedule, if any, is a valid tournament with the reported objective.
func checkRecord(teams uint64, record search.Record) error {
	if len(record.Sol) == 0 {
		if record.Obj != nil {
			return errors.New("objective reported without a schedule")
		}
		return nil
	}
	if !record.Optimal && record.Obj == nil {
		return errors.New("unfinished search reports a schedule")
	}

	instance, err := model.NewInstance(int(teams))
	if err != nil {
		return err
	}
	if err := model.Verify(instance, record.Sol); err != nil {
		return err
	}
	if record.Obj != nil && *record.Obj != record.Sol.MaxImbalance() {
		return fmt.Errorf("reported objective %d, the schedule has imbalance %d", *record.Obj, record.Sol.MaxImbalance())
	}
	return nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
