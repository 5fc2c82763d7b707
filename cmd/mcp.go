package cmd

import (
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the hammer MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents query project statistics via standard tools.`,
	Args:  cobra.NoArgs,
	// Logging goes to stderr, so stdout stays clean for the protocol.
	PreRunE: setupArgs(-1, -1),
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		return mcp.StartMCPServer(rootCtx, cfg, st, contract.NewLocalGitClient())
	},
}
