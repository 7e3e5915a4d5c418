// Package cmd provides the root command and CLI setup for seesharp.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	"seesharp.dev/pkg/seesharp/internal/controller"
	"seesharp.dev/pkg/seesharp/internal/domain"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

const positionHelp = `Positions are 1-based: --line 1 --column 1 is the first character of the file.`

const rootLongDescription = `SeeSharp offers small C# refactorings from the command line:
initializing fields and properties from constructor parameters, generating a
constructor from a class's properties, and computing the namespace a new
file should declare.

Settings are read from seesharp.yaml in the working directory and from
SEESHARP_* environment variables.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seesharp",
		Short:        "C# refactoring assistant",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(viper.GetString(outputFormatKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.BoolP(verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, defaultLogFilename, `log file path ("-" disables logging)`)
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.StringP(formatFlagName, "f", defaultOutputFormat, "output format: table or yaml")
	bindFlagToConfig(flags.Lookup(formatFlagName), outputFormatKey)

	flags.Int(tabSizeFlagName, m.DefaultTabSize, "editor tab size used for generated indentation")
	bindFlagToConfig(flags.Lookup(tabSizeFlagName), tabSizeKey)

	flags.String(workspaceFlagName, defaultWorkspaceRoot, "workspace root used when no project file is found (default: working directory)")
	bindFlagToConfig(flags.Lookup(workspaceFlagName), workspaceRootKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func validateFormat(format string) error {
	switch controller.OutputFormat(format) {
	case controller.FormatTable, controller.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unsupported output format %q", domain.ErrInvalidArgument, format)
	}
}

// newWorkflow assembles the adapters and domain services for one invocation.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	logger := newLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

	fsAdapter := adapter.NewLocalSourceFSAdapter(logger)
	projects := adapter.NewCsprojReader(logger)
	interactive := cmd.OutOrStdout() == os.Stdout && controller.IsTTY(os.Stdout) && controller.IsTTY(os.Stdin)
	ui := controller.NewUI(cmd, interactive, controller.WithFormat(controller.OutputFormat(viper.GetString(outputFormatKey))))

	return domain.NewWorkflow(
		fsAdapter,
		ui,
		domain.NewCodeActionProvider(logger),
		domain.NewCommandRegistry(),
		domain.NewNamespaceResolver(fsAdapter, projects, adapter.NewProjectJSONReader(), workspaceRoot(), logger),
		projects,
		adapter.NewIndentFormatter(),
		logger,
	)
}

// parsePosition converts 1-based command line coordinates to a Position.
func parsePosition(line, column int) (m.Position, error) {
	if line < 1 || column < 1 {
		return m.Position{}, fmt.Errorf("%w: --%s and --%s must be at least 1 (got %d:%d)",
			domain.ErrInvalidArgument, lineFlagName, columnFlagName, line, column)
	}

	return m.Position{Line: line - 1, Column: column - 1}, nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func addPositionFlags(cmd *cobra.Command, line, column *int) {
	cmd.Flags().IntVarP(line, lineFlagName, "l", 0, "1-based line of the cursor")
	cmd.Flags().IntVarP(column, columnFlagName, "c", 0, "1-based column of the cursor")
	cobra.CheckErr(cmd.MarkFlagRequired(lineFlagName))
	cobra.CheckErr(cmd.MarkFlagRequired(columnFlagName))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
