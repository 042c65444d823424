package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedclean.dev/pkg/seedclean/internal/domain"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "seedclean", configBaseName)
	assert.Equal(t, "seedclean.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "clean.atomic", cleanAtomicKey)
	assert.Equal(t, "clean.parallel", cleanParallelKey)
	assert.Equal(t, "server/seed.ts", defaultSeedPath)
	assert.Equal(t, ".seedclean-reports", defaultReportsDir)
	assert.Equal(t, 1, defaultParallel)
	assert.Equal(t, "SEEDCLEAN", envPrefix)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestLoadRuleSet_Defaults(t *testing.T) {
	rules, err := loadRuleSet()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleSet(), rules)
}

// useConfigFile points viper at a config file holding content. On cleanup the
// loaded values are replaced with an empty config and the default path is restored.
func useConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	viper.SetConfigFile(path)

	t.Cleanup(func() {
		empty := filepath.Join(dir, "empty.yaml")
		_ = os.WriteFile(empty, nil, 0o600)

		viper.SetConfigFile(empty)
		_ = viper.ReadInConfig()
		viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	})

	return path
}

func TestLoadRuleSet_FromConfigFile(t *testing.T) {
	useConfigFile(t, `rules:
  - name: users
    start_marker: "const users: InsertUser[] = ["
    drop_prefix: "password:"
  - name: orders
    start_marker: "const orders: InsertOrder[] = ["
    drop_prefix: "notes:"
end_token: "]"
`)
	require.NoError(t, viper.ReadInConfig())

	rules, err := loadRuleSet()
	require.NoError(t, err)

	assert.Equal(t, m.RuleSet{
		Rules: []m.BlockRule{
			{Name: "users", StartMarker: "const users: InsertUser[] = [", DropPrefix: "password:"},
			{Name: "orders", StartMarker: "const orders: InsertOrder[] = [", DropPrefix: "notes:"},
		},
		EndToken: "]",
	}, rules)
	require.NoError(t, domain.ValidateRuleSet(rules))
}

func TestLoadRuleSet_ConfigFileRestored(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		useConfigFile(t, "end_token: \"]\"\n")
		require.NoError(t, viper.ReadInConfig())
		assert.Equal(t, "]", viper.GetString(endTokenKey))
	})

	rules, err := loadRuleSet()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleSet(), rules)
}

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))

	return buf
}

func TestReadConfig(t *testing.T) {
	t.Run("missing file is silent", func(t *testing.T) {
		logs := captureDefaultLogger(t)
		path := useConfigFile(t, "")
		viper.SetConfigFile(filepath.Join(filepath.Dir(path), "absent.yaml"))

		readConfig()

		assert.Empty(t, logs.String())
	})

	t.Run("malformed file is logged", func(t *testing.T) {
		logs := captureDefaultLogger(t)
		path := useConfigFile(t, "rules: [\n  - name: broken\n")

		readConfig()

		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "failed to read config")
		assert.Contains(t, logs.String(), path)
	})

	t.Run("valid file is loaded", func(t *testing.T) {
		logs := captureDefaultLogger(t)
		useConfigFile(t, "path: db/seed.ts\n")

		readConfig()

		assert.Empty(t, logs.String())
		assert.Equal(t, "db/seed.ts", viper.GetString(pathKey))
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	configureLogger(t.TempDir()+"/seedclean.log", true)

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}
