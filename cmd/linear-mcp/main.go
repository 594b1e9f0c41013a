// Command linear-mcp runs an MCP server on stdio exposing the Linear API as
// tools. Configuration comes from the environment (optionally a .env file);
// a missing LINEAR_API_KEY is fatal at startup.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cosmix/linear-mcp/internal/config"
	"github.com/cosmix/linear-mcp/internal/linear"
	"github.com/cosmix/linear-mcp/internal/service"
	"github.com/cosmix/linear-mcp/internal/tools"
)

// version is injected at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "linear-mcp",
		Short:         "MCP server for the Linear API",
		Long:          "linear-mcp exposes Linear issues, cycles, documents and projects as MCP tools over stdio.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	// stdout carries the protocol; everything human-facing goes to stderr.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.ParseLogLevel())

	client := linear.NewClient(cfg.APIKey)
	svcs := service.NewServices(client)

	srv := server.NewMCPServer("linear-mcp", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.RegisterAll(srv, svcs, log)

	log.WithField("version", version).Info("starting linear-mcp on stdio")
	return server.ServeStdio(srv)
}
