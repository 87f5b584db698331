// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2aui implements the command line interface.
package a2aui

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "a2aui",
	Short: "Web chat client for A2A protocol agents",
	Long: `a2aui serves a web chat UI for talking to Agent-to-Agent (A2A)
protocol agents: register agents by URL, converse with the selected agent,
and inspect the resulting contexts, tasks, and artifacts.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
