package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdidvp/distkit/internal/adapters/outbound/config"
	"github.com/abdidvp/distkit/internal/adapters/outbound/process"
	"github.com/abdidvp/distkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/distkit/internal/adapters/outbound/treecopy"
	"github.com/abdidvp/distkit/internal/adapters/outbound/tui"
	"github.com/abdidvp/distkit/internal/application"
)

func newValidateCmd(g *globals) *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <distribution_dir>",
		Short: "Run the check suite against an extracted Python distribution",
		Long:  "Locate the interpreter under distribution_dir and run every check in order. Exits 0 only when all checks pass.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			svc := application.NewValidateService(
				config.New(),
				process.New(g.log()),
				treecopy.New(scanner.New()),
			)

			out := cmd.OutOrStdout()
			opts := application.ValidateOptions{ConfigPath: configPath}
			if !jsonOut {
				opts.Reporter = tui.NewTranscript(out)
			}

			session, err := svc.NewSession(args[0], opts)
			if err != nil {
				return err
			}

			if !jsonOut {
				fmt.Fprint(out, tui.RenderBanner(session.Layout.Root, runtime.GOOS, runtime.GOARCH))
			}

			report := svc.Run(ctx, session, nil)
			g.log().Debug("validation finished", "passed", report.Passed, "total", report.Total, "duration", report.Duration)

			if jsonOut {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, tui.RenderSummary(report))
			}

			if !report.AllPassed() {
				return ErrChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ./.distkit.yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the run after this long (0 = no limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output report as JSON")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
