package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"seesharp.dev/pkg/seesharp/internal/domain"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

const applyLongDescription = `Apply one of the code actions available at a position and print the
resulting diff.

Without --action the only available action is applied; when several exist
an interactive picker is shown on terminals. Use --dry-run to preview the
change without writing the file.

` + positionHelp

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	var (
		line, column int
		action       int
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a code action at a position",
		Long:  applyLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := parsePosition(line, column)
			if err != nil {
				return err
			}

			index, err := parseActionIndex(action)
			if err != nil {
				return err
			}

			return newWorkflow(cmd).Apply(cmd.Context(), domain.ApplyArgs{
				ActionsArgs: domain.ActionsArgs{
					Path:     m.Path(args[0]),
					Cursor:   cursor,
					Settings: settingsFromConfig(),
				},
				Action: index,
				DryRun: dryRun,
			})
		},
	}

	addPositionFlags(cmd, &line, &column)
	cmd.Flags().IntVarP(&action, actionFlagName, "a", 0, "1-based number of the action as listed by 'seesharp actions'")
	cmd.Flags().BoolVarP(&dryRun, dryRunFlagName, "n", false, "print the diff without writing the file")

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

// parseActionIndex maps the 1-based --action flag to an index; 0 means "ask".
func parseActionIndex(action int) (int, error) {
	switch {
	case action == 0:
		return domain.PickInteractively, nil
	case action < 0:
		return 0, fmt.Errorf("%w: --%s must be positive (got %d)", domain.ErrInvalidArgument, actionFlagName, action)
	default:
		return action - 1, nil
	}
}
