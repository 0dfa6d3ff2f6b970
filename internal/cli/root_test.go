package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"serve", "migrate", "listen"}, names)
}

func TestMigrateCommand_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, path)
}

func TestListenCommand_RequiresKafka(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"listen"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BOOTSTRAP_SERVERS")
}

func TestListenCommand_RequiresRedis(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"listen"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")
}

func TestNodeConsumerGroup_UniquePerProcess(t *testing.T) {
	a := nodeConsumerGroup("invoice-dashboard")
	b := nodeConsumerGroup("invoice-dashboard")

	assert.True(t, strings.HasPrefix(a, "invoice-dashboard-"))
	assert.NotEqual(t, a, b)
}

func TestRootCommand_EnvFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "from-env-file.db")
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_DRIVER=sqlite\nSQLITE_PATH="+dbPath+"\nLOG_LEVEL=error\n"), 0o600))

	// godotenv never overrides variables that are already set
	for _, k := range []string{"DB_DRIVER", "SQLITE_PATH", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--env-file", envFile, "migrate"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, dbPath)
}

func TestRootCommand_MissingEnvFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "nope.env"), "migrate"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
