// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"os"

	"github.com/Theycallmeholla/template-mcp/src/internal/helper/posix"
	mcpserver "github.com/Theycallmeholla/template-mcp/src/mcp-server"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	configFile string
	httpAddr   string
	httpToken  string
)

// Execute runs the root command, handling any errors that occur during execution.
//
// With no subcommand the server is served over stdio; the --http flag switches
// to the HTTP transport instead.
func Execute(version string) {
	rootCmd := &cobra.Command{
		Use:     posix.GetExecutableName(),
		Short:   "Template MCP server",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(version)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to JSON or YAML config file")
	rootCmd.Flags().StringVar(&httpAddr, "http", "", "serve HTTP on this address instead of stdio (e.g. :8080)")
	rootCmd.Flags().StringVar(&httpToken, "token", "", "bearer token required on HTTP /mcp routes")

	rootCmd.AddCommand(newToolsCommand(version))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServe starts the server on the selected transport. The config flag wins
// over the MCP_TEMPLATE_CONFIG_FILE environment variable.
func runServe(version string) error {
	if configFile != "" {
		if err := os.Setenv("MCP_TEMPLATE_CONFIG_FILE", configFile); err != nil {
			return fmt.Errorf("failed to set config path: %w", err)
		}
	}
	if httpAddr != "" {
		return mcpserver.RunHTTP(version, httpAddr, httpToken)
	}
	return mcpserver.Run(version)
}

// newToolsCommand creates the subcommand that prints the tool catalogue.
func newToolsCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := mcpserver.NewServerBuilder().
				WithVersion(version).
				WithDefaultTools(nil).
				Build()
			if err != nil {
				return fmt.Errorf("failed to build server: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "Description")
			for _, tool := range srv.ListCapabilities() {
				table.Append([]string{tool.Name, tool.Description})
			}
			table.Render()
			return nil
		},
	}
}
