// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/salesbrief/internal/export"
	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
	"github.com/jeranaias/salesbrief/internal/submit"
	"github.com/jeranaias/salesbrief/internal/ui/components"
	"github.com/jeranaias/salesbrief/internal/ui/styles"
)

type briefOptions struct {
	quick     bool
	jsonMode  bool
	all       bool
	exportFmt string
	outputDir string
}

func newBriefCommand(e *env) *cobra.Command {
	var opts briefOptions
	cmd := &cobra.Command{
		Use:   "brief <company>",
		Short: "Generate a sales brief for a company",
		Long: `Generates a brief through the insight service and prints it.

Output is rendered markdown on a terminal, plain text when piped, or a
JSON document with --json.

Example:
  salesbrief brief Microsoft
  salesbrief brief "TechStart India" --quick --json
  salesbrief brief Adobe --export md --output-dir ./briefs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quick") {
				opts.quick = e.cfg.UI.QuickMode
			}
			if opts.exportFmt != "" {
				if _, err := export.New(export.Format(opts.exportFmt), nil); err != nil {
					return &CommandError{Command: "brief", Action: "export", Reason: err.Error(), Err: ErrUsage}
				}
			}
			return e.runBrief(cmd, strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.quick, "quick", "q", false, "request a quick brief (research and news only)")
	cmd.Flags().BoolVar(&opts.jsonMode, "json", false, "output JSON")
	cmd.Flags().BoolVar(&opts.all, "all", false, "show every agent insight instead of the first few")
	cmd.Flags().StringVar(&opts.exportFmt, "export", "", "also write the brief to a file (md, json or html)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", ".", "directory for --export files")
	return cmd
}

func (e *env) runBrief(cmd *cobra.Command, company string, opts briefOptions) error {
	out := cmd.OutOrStdout()
	return OutputJSON(out, opts.jsonMode, "brief", func() (any, error) {
		cache := e.newCache()
		var routed insight.Key
		ctrl := submit.NewController(cache, submit.NavigatorFunc(func(key insight.Key) {
			routed = key
		}), e.logger.Logger)

		if err := ctrl.Submit(cmd.Context(), company, opts.quick); err != nil {
			return nil, err
		}
		res, err := cache.Fetch(cmd.Context(), routed)
		if err != nil {
			return nil, err
		}

		in := normalize.Normalize(res.Payload)
		if status, _ := in.Status.Get(); status == "error" {
			return nil, &CommandError{
				Command: "brief",
				Action:  "generate",
				Reason:  in.Error.Or(in.Message.Or("service reported an error")),
			}
		}

		st := present.NewState()
		if opts.all {
			for _, a := range normalize.AgentOrder {
				st.Dispatch(present.ToggleCard{Agent: a})
			}
		}
		page := present.Build(in, routed.Company, st)

		var exported string
		if opts.exportFmt != "" {
			exported, err = exportBrief(export.Brief{
				Key:         routed,
				Page:        page,
				RequestID:   res.RequestID,
				GeneratedAt: res.ReceivedAt,
			}, opts)
			if err != nil {
				return nil, err
			}
			e.logger.Info("brief exported", zap.String("path", exported))
		}

		if opts.jsonMode {
			data := briefData(routed, res, in, page)
			data.ExportPath = exported
			return data, nil
		}
		if err := e.printPage(out, page); err != nil {
			return nil, err
		}
		if exported != "" {
			fmt.Fprintf(out, "\nExported to %s\n", exported)
		}
		return nil, nil
	})
}

// printPage renders markdown on a terminal and plain text otherwise.
func (e *env) printPage(w io.Writer, page present.Page) error {
	text := page.PlainText()
	if !isTerminal(w) {
		_, err := io.WriteString(w, text)
		return err
	}
	theme := styles.NewThemeWithProfile(colorProfile(w), termenv.HasDarkBackground())
	md := components.NewMarkdown(theme.GlamourStyle(e.cfg.UI.GlamourStyle), terminalWidth(w)-4)
	_, err := fmt.Fprintln(w, md.Render(text))
	return err
}

func exportBrief(b export.Brief, opts briefOptions) (string, error) {
	exportOpts := export.DefaultOptions()
	exportOpts.OutputDir = opts.outputDir
	exporter, err := export.New(export.Format(opts.exportFmt), exportOpts)
	if err != nil {
		return "", err
	}
	path, err := export.ToFile(b, exporter, exportOpts)
	if err != nil {
		return "", &CommandError{Command: "brief", Action: "export", Reason: "could not write file", Err: err}
	}
	return path, nil
}

func briefData(key insight.Key, res *insight.Result, in normalize.Insight, page present.Page) BriefData {
	data := BriefData{
		Company:    page.Header.Company,
		Kind:       key.Kind.String(),
		RequestID:  res.RequestID,
		DurationMS: res.Duration.Milliseconds(),
		Sections:   make([]string, 0, len(page.Sections)),
		Text:       page.PlainText(),
		Payload:    res.Payload,
	}
	if pct, ok := in.Readiness.Get(); ok {
		data.Readiness = &pct
	}
	for _, s := range page.Sections {
		data.Sections = append(data.Sections, string(s.ID))
	}
	return data
}
