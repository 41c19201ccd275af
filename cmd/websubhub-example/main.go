package main

// This example serves an in-memory hub. It can be called like:
//
//		curl --data 'hub.mode=register&hub.topic=https://example.com/t' localhost:8080/hub
//		curl --data 'hub.mode=subscribe&hub.topic=https://example.com/t&hub.callback=http://localhost:9000/cb' localhost:8080/hub

import (
	"context"
	"fmt"
	"os"

	"github.com/asecurityteam/settings/v2"
	websubhub "github.com/asecurityteam/websubhub/pkg"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "websubhub-example",
		Short: "In-memory WebSub hub",
		Long: `In-memory WebSub hub.

Settings are read from WEBSUBHUB_ prefixed environment variables. Run
"websubhub-example settings" to list them.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newModeCmd("serve", "Serve the hub over HTTP", websubhub.BuildModeHTTP))
	rootCmd.AddCommand(newModeCmd("lambda", "Run the hub as a Lambda event handler", websubhub.BuildModeLambda))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Print the supported environment variables",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), websubhub.Help())
		},
	})
	return rootCmd.ExecuteContext(context.Background())
}

func newModeCmd(use string, short string, mode string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := settings.NewEnvSource(os.Environ())
			if err != nil {
				return err
			}
			return websubhub.StartMode(cmd.Context(), source, newMemoryHub(), mode)
		},
	}
}
