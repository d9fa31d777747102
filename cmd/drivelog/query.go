/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Handles the scenario, timestamp, gps and window commands

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/suparena/drivelog/storagemodels"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <driveid>",
	Short: "Print every log recorded for a drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		driveID, err := parseInt("driveid", args[0])
		if err != nil {
			return err
		}
		rows, err := client.QueryDriveScenario(cmd.Context(), driveID)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), rows)
	},
}

var timestampCmd = &cobra.Command{
	Use:   "timestamp <driveid> <logtime>",
	Short: "Print the log of a drive at one logtime",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		driveID, err := parseInt("driveid", args[0])
		if err != nil {
			return err
		}
		logTime, err := parseInt("logtime", args[1])
		if err != nil {
			return err
		}
		rows, err := client.QuerySpecificTimestamp(cmd.Context(), driveID, logTime)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), rows)
	},
}

var windowCmd = &cobra.Command{
	Use:   "window <driveid> <from> <to>",
	Short: "Print the logs of a drive between two logtimes, inclusive",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		driveID, err := parseInt("driveid", args[0])
		if err != nil {
			return err
		}
		from, err := parseInt("from", args[1])
		if err != nil {
			return err
		}
		to, err := parseInt("to", args[2])
		if err != nil {
			return err
		}
		rows, err := client.QueryTimeWindow(cmd.Context(), driveID, from, to)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), rows)
	},
}

var gpsCmd = &cobra.Command{
	Use:   "gps <driveid>",
	Short: "Print the GPS track of a drive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		driveID, err := parseInt("driveid", args[0])
		if err != nil {
			return err
		}
		fixes, err := client.QueryAllGPSData(cmd.Context(), driveID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printCount(out, len(fixes))
		for _, fix := range fixes {
			fmt.Fprintln(out, fix)
		}
		return nil
	},
}

func printCount(w io.Writer, n int) {
	if n == 0 {
		fmt.Fprintln(w, "Count is invalid/zero.")
		return
	}
	fmt.Fprintf(w, "        -- Retrieved %d log(s).\n", n)
}

// printRows writes the count line followed by one JSON object per row
func printRows(w io.Writer, rows []storagemodels.Row) error {
	printCount(w, len(rows))
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(timestampCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(gpsCmd)
}
