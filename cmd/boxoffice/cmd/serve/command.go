// Package serve provides the serve command.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/internal/appcontext"
	"github.com/agentstation/boxoffice/internal/server"
)

// NewCommand creates the serve command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the ledger over HTTP",
		Long: `Serve exposes the box office as a JSON API. Events, clients and the
journal can be read; tickets are sold and returned with POST requests.
Every transaction is pushed to WebSocket and Server-Sent Events listeners.

Endpoints (under the path prefix, /api/v1 by default):
  GET  /events, /events/{name}
  GET  /clients, /clients/{name}
  GET  /journal
  POST /sales, /cancellations
  GET  /updates/ws, /updates/stream
  GET  /health, /ready`,
		Example: `  boxoffice serve --sample                  # Sample data on localhost:8080
  boxoffice serve --input input.txt --port 9000
  boxoffice serve --cors --cors-origins https://tickets.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bo, err := app.BoxOffice()
			if err != nil {
				return err
			}

			srv, err := server.New(bo, cfg, app.Logger())
			if err != nil {
				return err
			}

			cmd.Printf("Serving box office on http://%s%s\n", cfg.Addr(), cfg.PathPrefix)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "Host to bind")
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	cmd.Flags().StringVar(&cfg.PathPrefix, "prefix", cfg.PathPrefix, "API path prefix")
	cmd.Flags().BoolVar(&cfg.CORSEnabled, "cors", cfg.CORSEnabled, "Enable CORS")
	cmd.Flags().StringSliceVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "Allowed CORS origins (all when empty)")
	cmd.Flags().IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per minute per IP (0 disables)")
	cmd.Flags().DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long list reads stay cached")
	cmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	cmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	cmd.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "HTTP idle timeout")

	return cmd
}
