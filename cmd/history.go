/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/localize/internal/validator"
)

var (
	historyOperation string
	historyLimit     int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local operation history",
	Long:  `List, inspect, and clear the SQLite history of operations run against the Localize API.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded operations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyOperation != "" {
			if _, ok := validator.ParseOperation(historyOperation); !ok {
				return fmt.Errorf("unknown operation: %s", historyOperation)
			}
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListOperations(cmd.Context(), historyOperation, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No operations recorded.")
			return nil
		}

		table := borderlessTable(out)
		table.SetHeader([]string{"ID", "OPERATION", "STATUS", "WHEN", "DETAIL"})
		for _, rec := range records {
			table.Append([]string{
				rec.ID, rec.Operation, rec.Status,
				rec.Timestamp.Local().Format("2006-01-02 15:04:05"), truncate(rec.Detail, 60),
			})
		}
		table.Render()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		rec, err := db.GetOperation(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %s\n", rec.ID)
		fmt.Fprintf(out, "Operation:   %s\n", rec.Operation)
		fmt.Fprintf(out, "Project:     %s\n", rec.ProjectKey)
		fmt.Fprintf(out, "Status:      %s\n", rec.Status)
		fmt.Fprintf(out, "When:        %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Detail:      %s\n", rec.Detail)

		if len(rec.Params) > 0 {
			keys := make([]string, 0, len(rec.Params))
			for k := range rec.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = k + "=" + rec.Params[k]
			}
			fmt.Fprintf(out, "Parameters:  %s\n", strings.Join(parts, " "))
		}

		phrases, err := db.GetPhrases(cmd.Context(), rec.ID)
		if err != nil {
			return fmt.Errorf("failed to load phrases: %w", err)
		}
		if len(phrases) > 0 {
			fmt.Fprintf(out, "Phrases (%d):\n", len(phrases))
			for _, p := range phrases {
				fmt.Fprintf(out, "  %s\n", p)
			}
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No operations recorded.")
			return nil
		}

		table := borderlessTable(out)
		table.SetHeader([]string{"OPERATION", "TOTAL", "OK", "FAILED", "LAST RUN"})
		for _, st := range stats {
			last := ""
			if !st.LastRun.IsZero() {
				last = st.LastRun.Local().Format("2006-01-02 15:04:05")
			}
			table.Append([]string{
				st.Operation, strconv.Itoa(st.Total), strconv.Itoa(st.Succeeded),
				strconv.Itoa(st.Failed), last,
			})
		}
		table.Render()
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded operation by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteOperation(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete operation: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted operation: %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearOperations(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d operations from history.\n", n)
		return nil
	},
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().StringVar(&historyOperation, "operation", "", "Only list this operation")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of operations to list (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
