package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/pkg/config"
)

// findCmd returns the subcommand with the given flags parsed, as cobra would before PreRun.
func findCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := RootCmd()
	cmd, rest, err := root.Find(args)
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(rest))
	cmd.SetContext(t.Context())
	return cmd
}

func TestSetupGlobalConfig(t *testing.T) {
	t.Run("Should apply defaults and attach config to the context", func(t *testing.T) {
		cmd := findCmd(t, "serve", "--env-file", filepath.Join(t.TempDir(), "absent.env"))
		// an explicitly named env file must exist
		require.Error(t, SetupGlobalConfig(cmd))

		cmd = findCmd(t, "serve")
		t.Chdir(t.TempDir())
		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		assert.Equal(t, 3111, cfg.Server.Port)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "DEBUG", cfg.Logging.Level)
	})

	t.Run("Should let flags win over APP_LOGGERLEVEL and DB_PATH", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("APP_LOGGERLEVEL", "info")
		t.Setenv("DB_PATH", "/env/posts.db")
		cmd := findCmd(t, "serve", "--log-level", "ERROR", "--port", "8080", "--db", "/flag/posts.db")

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		assert.Equal(t, "ERROR", cfg.Logging.Level)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "/flag/posts.db", cfg.Database.Path)
	})

	t.Run("Should read an explicit env file", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, "custom.env")
		require.NoError(t, os.WriteFile(envFile, []byte("APP_LOGGERLEVEL=WARNING\nSERVER_PORT=4000\n"), 0o600))
		cmd := findCmd(t, "--env-file", envFile)

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := config.FromContext(cmd.Context())
		assert.Equal(t, "WARNING", cfg.Logging.Level)
		assert.Equal(t, 4000, cfg.Server.Port)
	})

	t.Run("Should reject invalid flag values", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cmd := findCmd(t, "serve", "--port", "70000")

		assert.Error(t, SetupGlobalConfig(cmd))
	})
}

func TestInitDB(t *testing.T) {
	t.Run("Should create the schema and seed an empty database once", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dbPath := filepath.Join(t.TempDir(), "database.db")
		for range 2 {
			root := RootCmd()
			root.SetArgs([]string{"init-db", "--db", dbPath})
			require.NoError(t, root.ExecuteContext(t.Context()))
		}

		posts, err := sqlite.NewPostRepo(sqlite.NewAccessor(&sqlite.Config{Path: dbPath}, nil)).List(t.Context())
		require.NoError(t, err)
		assert.Len(t, posts, len(sqlite.DefaultSeeds()))
	})

	t.Run("Should only create the schema with --no-seed", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dbPath := filepath.Join(t.TempDir(), "database.db")
		root := RootCmd()
		root.SetArgs([]string{"init-db", "--db", dbPath, "--no-seed"})
		require.NoError(t, root.ExecuteContext(t.Context()))

		posts, err := sqlite.NewPostRepo(sqlite.NewAccessor(&sqlite.Config{Path: dbPath}, nil)).List(t.Context())
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestEnsurePortAvailable(t *testing.T) {
	t.Run("Should allow binding when port is available", func(t *testing.T) {
		listener, port := occupyPort(t)
		require.NoError(t, listener.Close())
		require.Eventually(t, func() bool {
			return EnsurePortAvailable(t.Context(), "127.0.0.1", port) == nil
		}, 500*time.Millisecond, 25*time.Millisecond)
	})

	t.Run("Should return error when port is already bound", func(t *testing.T) {
		listener, port := occupyPort(t)
		defer listener.Close()

		err := EnsurePortAvailable(t.Context(), "127.0.0.1", port)

		require.Error(t, err)
		require.Contains(t, err.Error(), fmt.Sprintf("%d", port))
	})
}

func TestFormatAddress(t *testing.T) {
	t.Run("Should bracket IPv6 host", func(t *testing.T) {
		require.Equal(t, "[::1]:5000", formatAddress("::1", 5000))
	})
	t.Run("Should leave IPv4 host unchanged", func(t *testing.T) {
		require.Equal(t, "127.0.0.1:5000", formatAddress("127.0.0.1", 5000))
	})
}

func occupyPort(t *testing.T) (net.Listener, int) {
	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	return listener, addr.Port
}
