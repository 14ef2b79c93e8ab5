package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env or
// adaptiq.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"ADAPTIQ_BANK", "ADAPTIQ_DB", "ADAPTIQ_LLM_PROVIDER", "ADAPTIQ_GEMINI_API_KEY", "ADAPTIQ_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	_, c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBankPath, c.Bank.Path)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "claude-haiku", c.LLM.Anthropic.Model)
	assert.Equal(t, 3, c.LLM.Retry.MaxAttempts)
	assert.Equal(t, "Python", c.Policy.DefaultTopic)
	assert.True(t, c.Predict.UseLLM)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	yaml := `
bank:
  path: /data/questions.csv
log:
  level: debug
  format: json
llm:
  provider: gemini
  timeout: 5s
policy:
  max_questions: 15
  first_quiz_size: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adaptiq.yaml"), []byte(yaml), 0o644))
	t.Setenv("ADAPTIQ_GEMINI_API_KEY", "g-key")
	t.Setenv("ADAPTIQ_DB", "/tmp/x.db")

	v, c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/questions.csv", c.Bank.Path)
	assert.Equal(t, "gemini", c.LLM.Provider)
	assert.Equal(t, "g-key", c.LLM.Gemini.APIKey)
	assert.Equal(t, 5*time.Second, c.LLM.Timeout)
	assert.Equal(t, 15, c.Policy.MaxQuestions)
	assert.Equal(t, 4, c.Policy.FirstQuizSize)

	p, err := c.DBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", p)

	log := NewLogger(v)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADAPTIQ_BANK=from-dotenv.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ADAPTIQ_BANK") })

	_, c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.csv", c.Bank.Path)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log format", "log:\n  format: xml\n"},
		{"inverted thresholds", "policy:\n  struggling_below: 0.9\n  advanced_at_or_above: 0.5\n"},
		{"empty bank", "bank:\n  path: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "custom.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, _, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	_, err := NewViper("does-not-exist.yaml")
	assert.Error(t, err)
}
