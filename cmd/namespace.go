package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seesharp.dev/pkg/seesharp/internal/domain"
)

const namespaceLongDescription = `Print the namespace a C# file at each PATH should declare.

The namespace comes from the RootNamespace of the nearest .csproj, or the
tooling.defaultNamespace of the nearest project.json, followed by one segment
per directory below the project. Without either, the directories below the
workspace root are used. PATH does not need to exist.`

// namespaceCmd represents the namespace command.
var namespaceCmd = newNamespaceCmd()

func newNamespaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespace PATH...",
		Short: "Compute the namespace for new files",
		Long:  namespaceLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Namespaces(cmd.Context(), domain.NamespaceArgs{
				Targets:  parsePaths(args),
				Parallel: viper.GetInt(namespaceParallelKey),
			})
		},
	}

	cmd.Flags().IntP(parallelFlagName, "p", defaultNamespaceParallel, "number of paths resolved concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), namespaceParallelKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(namespaceCmd)
}
