package cmd

import (
	"github.com/spf13/cobra"

	"seesharp.dev/pkg/seesharp/internal/domain"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

const actionsLongDescription = `List the code actions available at a position in a C# file.

` + positionHelp

// actionsCmd represents the actions command.
var actionsCmd = newActionsCmd()

func newActionsCmd() *cobra.Command {
	var line, column int

	cmd := &cobra.Command{
		Use:   "actions FILE",
		Short: "List code actions at a position",
		Long:  actionsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := parsePosition(line, column)
			if err != nil {
				return err
			}

			return newWorkflow(cmd).Actions(cmd.Context(), domain.ActionsArgs{
				Path:     m.Path(args[0]),
				Cursor:   cursor,
				Settings: settingsFromConfig(),
			})
		},
	}

	addPositionFlags(cmd, &line, &column)

	return cmd
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}
