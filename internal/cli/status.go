// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/util"
)

func newStatusCommand(e *env) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the insight service and its agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return OutputJSON(out, jsonMode, "status", func() (any, error) {
				data, err := e.fetchStatus(cmd)
				if err != nil {
					return nil, err
				}
				if !jsonMode {
					printStatus(out, data)
				}
				return data, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output JSON")
	return cmd
}

// fetchStatus queries health and agent status concurrently.
func (e *env) fetchStatus(cmd *cobra.Command) (StatusData, error) {
	var (
		health *insight.Health
		agents *insight.AgentStatus
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		h, err := e.client.Health(ctx)
		health = h
		return err
	})
	g.Go(func() error {
		a, err := e.client.AgentStatus(ctx)
		agents = a
		return err
	})
	if err := g.Wait(); err != nil {
		return StatusData{}, &CommandError{Command: "status", Action: "check", Reason: e.client.BaseURL(), Err: err}
	}

	data := StatusData{
		BaseURL:             e.client.BaseURL(),
		Health:              health.Status,
		Version:             health.Version,
		OrchestratorVersion: agents.OrchestratorVersion,
		TotalAgents:         agents.TotalAgents,
		Agents:              make([]AgentData, 0, len(agents.Agents)),
	}
	for _, a := range agents.Agents {
		data.Agents = append(data.Agents, AgentData(a))
	}
	return data, nil
}

func printStatus(w io.Writer, data StatusData) {
	fmt.Fprintf(w, "Service:      %s\n", data.BaseURL)
	health := data.Health
	if data.Version != "" {
		health += " (" + data.Version + ")"
	}
	fmt.Fprintf(w, "Health:       %s\n", health)
	if data.OrchestratorVersion != "" {
		fmt.Fprintf(w, "Orchestrator: %s\n", data.OrchestratorVersion)
	}
	fmt.Fprintf(w, "Agents:       %d\n", data.TotalAgents)

	nameWidth := 0
	for _, a := range data.Agents {
		nameWidth = max(nameWidth, util.StringWidth(a.Name))
	}
	for _, a := range data.Agents {
		fmt.Fprintf(w, "  %s  %-8s %s\n", util.PadRight(a.Name, nameWidth), a.Status, a.Description)
	}
}
