package cmd

import (
	"github.com/spf13/cobra"

	"seesharp.dev/pkg/seesharp/internal/domain"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// refsCmd represents the refs command.
var refsCmd = newRefsCmd()

func newRefsCmd() *cobra.Command {
	var projects bool

	cmd := &cobra.Command{
		Use:   "refs [PATH]",
		Short: "List the references of the nearest project",
		Long: `List the PackageReference items of the nearest .csproj above PATH
(default: the working directory). With --projects, list ProjectReference
items instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path m.Path
			if len(args) == 1 {
				path = m.Path(args[0])
			}

			return newWorkflow(cmd).References(cmd.Context(), domain.ReferencesArgs{
				Path:     path,
				Projects: projects,
			})
		},
	}

	cmd.Flags().BoolVar(&projects, projectsFlagName, false, "list project references instead of packages")

	return cmd
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
