package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"seedclean.dev/pkg/seedclean/internal/domain"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "seedclean"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	reportFlagName   = "report"
	atomicFlagName   = "atomic"
	parallelFlagName = "parallel"
	dryRunFlagName   = "dry-run"
	diffFlagName     = "diff"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"

	pathKey           = "path"
	cleanAtomicKey    = "clean.atomic"
	cleanParallelKey  = "clean.parallel"
	rulesKey          = "rules"
	endTokenKey       = "end_token"
	defaultSeedPath   = "server/seed.ts"
	defaultReportsDir = ".seedclean-reports"
	defaultReport     = false
	defaultAtomic     = false
	defaultParallel   = 1

	envPrefix = "SEEDCLEAN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".seedclean.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(pathKey, defaultSeedPath)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(reportFlagName, defaultReport)
	viper.SetDefault(cleanAtomicKey, defaultAtomic)
	viper.SetDefault(cleanParallelKey, defaultParallel)
	viper.SetDefault(rulesKey, defaultRulesConfig())
	viper.SetDefault(endTokenKey, domain.DefaultEndToken)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	readConfig()
}

// readConfig loads the config file if one exists. A missing file is not an
// error; an unreadable or malformed one is logged and defaults apply.
func readConfig() {
	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return
	}

	slog.Warn("failed to read config", "file", viper.ConfigFileUsed(), "error", err)
}

// defaultRulesConfig renders the built-in rules as plain maps so that
// `init` writes them out as editable YAML.
func defaultRulesConfig() []map[string]string {
	defaults := domain.DefaultRuleSet()
	rules := make([]map[string]string, 0, len(defaults.Rules))

	for _, rule := range defaults.Rules {
		rules = append(rules, map[string]string{
			"name":         rule.Name,
			"start_marker": rule.StartMarker,
			"drop_prefix":  rule.DropPrefix,
		})
	}

	return rules
}

// loadRuleSet decodes the configured rules and end token.
func loadRuleSet() (m.RuleSet, error) {
	var rules []m.BlockRule
	if err := viper.UnmarshalKey(rulesKey, &rules); err != nil {
		return m.RuleSet{}, fmt.Errorf("decode %s: %w", rulesKey, err)
	}

	return m.RuleSet{Rules: rules, EndToken: viper.GetString(endTokenKey)}, nil
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

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
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

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
