package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/internal/api"
)

// newServeCmd creates the serve command that runs the HTTP editor API.
func newServeCmd(flags *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the data editor HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := flags.newService()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			logger := loggerFromContext(cmd.Context())
			server := &http.Server{
				Addr:              cfg.Listen,
				Handler:           api.New(svc, logger, cfg.CORSOrigins).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("serving data editor API", "addr", cfg.Listen, "data", cfg.DataDir)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}
