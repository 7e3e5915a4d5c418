package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "seesharp"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	lineFlagName      = "line"
	columnFlagName    = "column"
	actionFlagName    = "action"
	dryRunFlagName    = "dry-run"
	formatFlagName    = "format"
	projectsFlagName  = "projects"
	parallelFlagName  = "parallel"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	tabSizeFlagName   = "tab-size"
	workspaceFlagName = "workspace"

	tabSizeKey             = "editor.tab_size"
	useThisKey             = "seesharp.use_this_for_ctor_assignments"
	privateMemberPrefixKey = "seesharp.private_member_prefix"
	reformatKey            = "seesharp.reformat_after_change"
	workspaceRootKey       = "workspace.root"
	namespaceParallelKey   = "namespace.parallel"
	outputFormatKey        = "output.format"

	defaultWorkspaceRoot     = ""
	defaultNamespaceParallel = 4
	defaultOutputFormat      = "table"

	envPrefix = "SEESHARP"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".seesharp.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(tabSizeKey, m.DefaultTabSize)
	viper.SetDefault(useThisKey, m.DefaultUseThis)
	viper.SetDefault(privateMemberPrefixKey, m.DefaultPrivateMemberPrefix)
	viper.SetDefault(reformatKey, m.DefaultReformatAfterChange)
	viper.SetDefault(workspaceRootKey, defaultWorkspaceRoot)
	viper.SetDefault(namespaceParallelKey, defaultNamespaceParallel)
	viper.SetDefault(outputFormatKey, defaultOutputFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		_, _ = fmt.Fprintf(os.Stderr, "seesharp: ignoring %s: %v\n", configFileName, err)
	}
}

// settingsFromConfig reads the refactoring settings for one invocation.
func settingsFromConfig() m.Settings {
	settings := m.Settings{
		TabSize:             viper.GetInt(tabSizeKey),
		UseThis:             viper.GetBool(useThisKey),
		PrivateMemberPrefix: viper.GetString(privateMemberPrefixKey),
		ReformatAfterChange: viper.GetBool(reformatKey),
	}

	if settings.TabSize <= 0 {
		settings.TabSize = m.DefaultTabSize
	}

	return settings
}

// workspaceRoot returns the configured workspace root, or the working
// directory when none is set.
func workspaceRoot() m.Path {
	root := strings.TrimSpace(viper.GetString(workspaceRootKey))
	if root != "" {
		return m.Path(root)
	}

	wd, err := os.Getwd()
	if err != nil {
		return m.Path(configFolderPath)
	}

	return m.Path(wd)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// newLogger builds the logger handed to adapters and the domain.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
// A log path of "-" discards everything.
func newLogger(logPath string, verbose bool) *slog.Logger {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	var logWriter io.Writer = io.Discard
	if logPath != "-" {
		logWriter = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    viper.GetInt(logMaxSizeKey),
			MaxBackups: viper.GetInt(logMaxBackupsKey),
			MaxAge:     viper.GetInt(logMaxAgeKey),
			Compress:   viper.GetBool(logCompressKey),
		}
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	return slog.New(handler)
}
