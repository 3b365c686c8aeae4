// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/climate-app/climate/internal/api/http"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.conf.Server.Listen
			}
			server := httpapi.New(a.service, a.log)

			errChan := make(chan error, 1)
			go func() {
				a.log.Info("starting API server", "listen", listen, "version", version)
				errChan <- server.Listen(listen)
			}()

			select {
			case err := <-errChan:
				return fmt.Errorf("API server failed: %w", err)
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.ShutdownWithContext(ctx); err != nil {
				return fmt.Errorf("failed to shut down API server: %w", err)
			}
			a.log.Info("API server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}
