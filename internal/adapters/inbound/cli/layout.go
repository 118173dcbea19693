package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/distkit/internal/adapters/outbound/config"
	"github.com/abdidvp/distkit/internal/adapters/outbound/tui"
	"github.com/abdidvp/distkit/internal/application"
)

func newLayoutCmd() *cobra.Command {
	var (
		configPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "layout <distribution_dir>",
		Short: "Show where validate would find the interpreter and its support files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewValidateService(config.New(), nil, nil)
			layout, _, err := svc.ResolveLayout(args[0], configPath)
			if err != nil {
				return err
			}

			env := layout.Overrides(os.Getenv("PATH"))
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), struct {
					Layout any               `json:"layout"`
					Env    map[string]string `json:"env,omitempty"`
				}{layout, env})
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLayout(layout, env))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ./.distkit.yaml)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output layout as JSON")

	return cmd
}
