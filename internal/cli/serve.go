package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkrank/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		cacheMode string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP ranking API",
		Long: `Run the HTTP ranking API.

The server exposes the same pipeline as the rank command:

  POST /api/rank    rank an edge list (request body) and return JSON
  GET  /healthz     liveness probe

The server shuts down gracefully on SIGINT/SIGTERM. Use the redis cache
backend when running multiple instances behind a load balancer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("listen") && c.Config.Listen != "" {
				listen = c.Config.Listen
			}
			if !flags.Changed("cache") && c.Config.Cache != "" {
				cacheMode = c.Config.Cache
			}

			runner, err := c.newRunner(cmd.Context(), cacheMode)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{Addr: listen})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&cacheMode, "cache", cacheModeFile, "cache backend: file, redis or off")

	return cmd
}
