package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/migration"
	"github.com/spf13/cobra"
)

func NewRefreshTokensCommand(opts *RootOptions) *cobra.Command {
	var threshold time.Duration

	cmd := &cobra.Command{
		Use:   "refresh-tokens",
		Short: "Refresh Allegro tokens that expire within the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Deps()
			if err != nil {
				return err
			}
			defer deps.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = deps.Config.TokenRefresh.Threshold
			}

			summary, err := deps.Tokens.RefreshExpiring(cmd.Context(), threshold)
			if err != nil {
				return err
			}

			return writeOutput(opts.Out, opts.Format, summary, func(w io.Writer) {
				fmt.Fprintf(w, "checked=%d refreshed=%d failed=%d\n", summary.Checked, summary.Refreshed, summary.Failed)
			})
		},
	}

	cmd.Flags().DurationVar(&threshold, "threshold", time.Hour, "refresh tokens expiring within this window (defaults to TOKEN_REFRESH_THRESHOLD)")

	return cmd
}

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Deps()
			if err != nil {
				return err
			}
			defer deps.Close()

			applied, err := migration.Apply(cmd.Context(), deps.Conn)
			if err != nil {
				return err
			}

			return writeOutput(opts.Out, opts.Format, applied, func(w io.Writer) {
				if len(applied) == 0 {
					fmt.Fprintln(w, "database is up to date")
					return
				}
				for _, name := range applied {
					fmt.Fprintf(w, "applied %s\n", name)
				}
			})
		},
	}
}
