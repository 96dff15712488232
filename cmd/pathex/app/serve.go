package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/pathex/internal/server"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template table and tools over MCP",
		Long: `Serve the template table and tools over the Model Context Protocol.

The stdio transport reads requests from stdin and writes responses to stdout,
so logs always go to stderr. The http transport serves streamable HTTP on
--address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}
			cfg := server.Config{
				Transport: c.v.GetString("transport"),
				Address:   c.v.GetString("address"),
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			c.logger.Info("starting MCP server",
				zap.String("transport", cfg.Transport),
				zap.Int("resources", len(set.Resources())),
				zap.Int("templates", len(set.Templates())))
			err = server.Serve(ctx, server.New("pathex", Version, set, c.logger), cfg)
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("transport", server.TransportStdio, "Transport (stdio or http)")
	cmd.Flags().String("address", ":8080", "Listen address for the http transport")
	cobra.CheckErr(c.v.BindPFlag("transport", cmd.Flags().Lookup("transport")))
	cobra.CheckErr(c.v.BindPFlag("address", cmd.Flags().Lookup("address")))
	return cmd
}
