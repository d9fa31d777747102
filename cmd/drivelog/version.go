/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suparena/drivelog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	// version needs no config or AWS client
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		info := drivelog.GetVersionInfo()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "drivelog version %s\n", info.Version)
		fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
