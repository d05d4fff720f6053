package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/shapegen/internal/server"
)

// serveCommand runs the MCP server on stdin/stdout. Logs stay on stderr.
func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long:  `Serve speaks the Model Context Protocol (JSON-RPC 2.0, one message per line) on stdin/stdout so MCP clients can build labeled scenes on demand.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			server.Version = version
			srv, err := server.New(cfg, c.Logger)
			if err != nil {
				return err
			}
			c.Logger.Debug("MCP server starting", "version", version, "commit", commit)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
