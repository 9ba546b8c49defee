package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cicd-demo/calcd/internal/server"
	"github.com/cicd-demo/calcd/internal/style"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the calcd HTTP server.

The server provides:
- GET  /           welcome message and API version
- GET  /health     health check
- POST /calculate  evaluate {"operation", "a", "b"}
- GET  /metrics    Prometheus metrics

Configuration is read from flags, then CALCD_* or the plain PORT and DEBUG
environment variables (a .env file is loaded first), then the config
file.

Examples:
  calcd serve                        # Listen on 0.0.0.0:5000
  calcd serve --port 8080            # Custom port
  PORT=8080 DEBUG=true calcd serve   # Configure through the environment`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := serverConfigFromViper()

		srv, err := server.New(config)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		if !viper.GetBool("quiet") {
			addr := srv.GetAddr()
			style.Success(cmd.OutOrStdout(), fmt.Sprintf("calcd server starting at http://%s", addr))
			if config.EnableMetrics {
				style.Info(cmd.OutOrStdout(), fmt.Sprintf("Metrics exposed at http://%s/metrics", addr))
			}
		}

		if err := srv.StartWithGracefulShutdown(cmd.Context()); err != nil {
			log.Error().Err(err).Msg("Server error")
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().IntP("port", "p", 5000, "server port")
	serveCmd.Flags().String("host", "0.0.0.0", "server host")
	serveCmd.Flags().Bool("debug", false, "enable debug logging")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "graceful shutdown timeout")

	// Features
	serveCmd.Flags().Bool("metrics", true, "enable Prometheus metrics endpoint")
	serveCmd.Flags().Bool("cors", true, "enable CORS headers")

	bindServeConfig()
}

// bindServeConfig binds the serve flags to viper keys of the same name
func bindServeConfig() {
	for _, name := range []string{"port", "host", "debug", "shutdown-timeout", "metrics", "cors"} {
		_ = viper.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}
}

// serverConfigFromViper builds the server configuration from flags, env and config file
func serverConfigFromViper() *server.Config {
	config := server.DefaultConfig()
	config.Host = viper.GetString("host")
	config.Port = viper.GetInt("port")
	config.Debug = viper.GetBool("debug")
	config.EnableMetrics = viper.GetBool("metrics")
	config.EnableCORS = viper.GetBool("cors")
	if timeout := viper.GetDuration("shutdown-timeout"); timeout > 0 {
		config.ShutdownTimeout = timeout
	}
	return config
}
