package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aimatehq/aimate/internal/config"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "aimate",
		Short: "AI Mate LLM Bot: a Telegram webhook bridge to Groq chat completions",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	serve.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
