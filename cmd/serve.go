package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gensql-labs/gensql/internal/config"
	"github.com/gensql-labs/gensql/internal/llm"
	"github.com/gensql-labs/gensql/internal/server"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GenSQL HTTP API",
	Long: `Serve schema conversion, data generation and dataset analysis over
HTTP. Conversion endpoints need a Gemini API key in the environment; the
rest work without one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var llmService *llm.Service
		if apiKey, err := cfg.GetAPIKey(); err == nil {
			llmService, err = llm.NewService(cmd.Context(), apiKey)
			if err != nil {
				return err
			}
		} else {
			color.Yellow("⚠️  %v: conversion endpoints disabled", err)
		}

		return server.New(cfg, llmService).Start(servePort, serveOpen)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", server.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the browser after starting")

	rootCmd.AddCommand(serveCmd)
}
