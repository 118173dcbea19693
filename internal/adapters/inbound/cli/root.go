package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrChecksFailed is returned when validation ran to completion but at least
// one check failed. The transcript already explains why, so Execute prints
// nothing more.
var ErrChecksFailed = errors.New("some checks failed")

// globals are the flags and collaborators shared by every subcommand.
type globals struct {
	verbose bool
	logger  *log.Logger
}

func (g *globals) log() *log.Logger {
	if g.logger == nil {
		return log.Default()
	}
	return g.logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "distkit",
		Short:         "Package and smoke-test standalone Python distributions",
		Long:          "distkit archives a distribution tree into a reproducible .tar.gz and validates an extracted tree with an ordered suite of checks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			g.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "distkit"})
			if g.verbose {
				g.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log subprocess invocations and archive entries")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newArchiveCmd(g))
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newLayoutCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command tree. Interrupts cancel the running subprocess.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrChecksFailed) {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	return err
}
