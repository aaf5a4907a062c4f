package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/techtrends/techtrends/engine/infra/server"
	"github.com/techtrends/techtrends/pkg/config"
	"github.com/techtrends/techtrends/pkg/logger"
)

const portProbeTimeout = time.Second

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog HTTP server",
		RunE:  runServe,
	}
	addServeFlags(cmd.Flags())
	return cmd
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "Host interface to bind (overrides SERVER_HOST)")
	fs.Int("port", 0, "Port to listen on (overrides SERVER_PORT)")
	fs.Bool("monitoring", false, "Expose the Prometheus exporter (overrides MONITORING_ENABLED)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	gin.SetMode(gin.ReleaseMode)
	logger.FromContext(ctx).Info("Starting TechTrends",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database", cfg.Database.Path,
	)
	if err := EnsurePortAvailable(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		return err
	}
	return server.NewServer(ctx).Run()
}

// EnsurePortAvailable fails fast when host:port cannot be bound.
func EnsurePortAvailable(ctx context.Context, host string, port int) error {
	probeCtx, cancel := context.WithTimeout(ctx, portProbeTimeout)
	defer cancel()
	addr := formatAddress(host, port)
	lc := net.ListenConfig{}
	ln, err := lc.Listen(probeCtx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is not available on host %s: %w", port, host, err)
	}
	return ln.Close()
}

func formatAddress(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
