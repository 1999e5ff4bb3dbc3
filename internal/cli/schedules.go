package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one pass over every active schedule",
		Long: `Run one schedule pass immediately, exactly as the periodic job does:
every active schedule whose window contains the current time is executed
and its result recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Deps()
			if err != nil {
				return err
			}
			defer deps.Close()

			summary, err := deps.Runner.RunOnce(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			return writeOutput(opts.Out, opts.Format, summary, func(w io.Writer) {
				fmt.Fprintf(w, "evaluated=%d matched=%d executed=%d succeeded=%d skipped=%d failed=%d\n",
					summary.Evaluated, summary.Matched, summary.Executed, summary.Succeeded, summary.Skipped, summary.Failed)
			})
		},
	}
}

func NewExecuteCommand(opts *RootOptions) *cobra.Command {
	var scheduleID string

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Execute a single schedule now, ignoring its time window",
		Example: `  schedulectl execute --schedule-id 3f9a
  schedulectl execute --schedule-id 3f9a --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Deps()
			if err != nil {
				return err
			}
			defer deps.Close()

			result, err := deps.Runner.ExecuteByID(cmd.Context(), scheduleID)
			if err != nil {
				return err
			}

			return writeOutput(opts.Out, opts.Format, result, func(w io.Writer) {
				fmt.Fprintf(w, "success=%t message=%q\n", result.Success, result.Message)
				if len(result.AffectedAdGroupIDs) > 0 {
					fmt.Fprintf(w, "affected: %s\n", strings.Join(result.AffectedAdGroupIDs, ", "))
				}
				if result.Error != nil {
					fmt.Fprintf(w, "errors: %s\n", *result.Error)
				}
			})
		},
	}

	cmd.Flags().StringVar(&scheduleID, "schedule-id", "", "schedule to execute (required)")
	_ = cmd.MarkFlagRequired("schedule-id")

	return cmd
}

func NewListCommand(opts *RootOptions) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules with their next execution time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Deps()
			if err != nil {
				return err
			}
			defer deps.Close()

			schedules, err := deps.Schedules.ListSchedules(cmd.Context(), accountID)
			if err != nil {
				return err
			}

			return writeOutput(opts.Out, opts.Format, schedules, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tACCOUNT\tNAME\tACTIVE\tACTION\tNEXT")
				for _, s := range schedules {
					next := "-"
					if s.NextExecution != nil {
						next = s.NextExecution.Format(time.RFC3339)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\n", s.ID, s.AccountID, s.Name, s.Active, s.Action.Type, next)
				}
				_ = tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "only list schedules of this Allegro account")

	return cmd
}
