// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/util"
)

func newHistoryCommand(e *env) *cobra.Command {
	var (
		limit    int
		jsonMode bool
	)
	cmd := &cobra.Command{
		Use:   "history <company>",
		Short: "Show previously generated briefs for a company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = e.cfg.UI.HistoryLimit
			}
			company := insight.NormalizeCompany(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			return OutputJSON(out, jsonMode, "history", func() (any, error) {
				hist, err := e.client.History(cmd.Context(), company, limit)
				if err != nil {
					return nil, err
				}
				data := HistoryData{Company: company, Limit: limit, Entries: hist.Entries, Message: hist.Message}
				if data.Entries == nil {
					data.Entries = []any{}
				}
				if jsonMode {
					return data, nil
				}
				fmt.Fprintf(out, "%s: %d %s\n", company, len(data.Entries),
					util.Plural(len(data.Entries), "entry", "entries"))
				for i, entry := range data.Entries {
					line, _ := json.MarshalToString(entry)
					fmt.Fprintf(out, "%3d. %s\n", i+1, util.TruncateWidth(line, terminalWidth(out)-6))
				}
				if data.Message != "" {
					fmt.Fprintln(out, data.Message)
				}
				return nil, nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output JSON")
	return cmd
}
