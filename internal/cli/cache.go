// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/salesbrief/internal/insight"
)

func newCacheCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the insight service cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear <company>",
		Short: "Drop the service's cached briefs for a company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			company := insight.NormalizeCompany(strings.Join(args, " "))
			if company == "" {
				return insight.ErrEmptyCompany
			}
			if err := e.client.ClearCache(cmd.Context(), company); err != nil {
				return &CommandError{Command: "cache", Action: "clear", Reason: company, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached insights for %s\n", company)
			return nil
		},
	})
	return cmd
}
