package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/distkit/internal/adapters/outbound/archive"
	"github.com/abdidvp/distkit/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/distkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/distkit/internal/adapters/outbound/tui"
	"github.com/abdidvp/distkit/internal/application"
	"github.com/abdidvp/distkit/internal/domain"
)

func newArchiveCmd(g *globals) *cobra.Command {
	var (
		prefix  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "archive <source_dir> <output_file>",
		Short: "Create a sorted .tar.gz archive of a directory",
		Long:  "Walk source_dir in sorted order and write every file into output_file, optionally under a path prefix.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := domain.ArchiveJob{Source: args[0], Output: args[1], Prefix: prefix}
			svc := application.NewArchiveService(scanner.New(), archive.New(g.log()), gitinfo.New())

			if err := svc.Prepare(job); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !jsonOut {
				fmt.Fprint(out, tui.RenderArchiveStart(job))
			}

			result, err := svc.Create(job)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(out, result)
			}

			fmt.Fprint(out, tui.RenderArchiveResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Path prefix for every archive entry (e.g. python)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")

	return cmd
}
