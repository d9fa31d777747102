/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Handles the export and download commands

package main

import (
	"bytes"
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/suparena/drivelog"
	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/registry"
)

var exportCmdConfig struct {
	out    string
	format string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Scan the whole table into a JSON or YAML file",
	Long: fmt.Sprintf(`Scans every log in the table and writes them to --out as a single
document with the table name, export time, count and items. Use "-" to
write to stdout. Formats: %v.`, registry.Formats()),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// --out is only written once the whole document is encoded
		var buf bytes.Buffer
		doc, err := client.ExportAll(cmd.Context(), &buf, exportCmdConfig.format)
		if err != nil {
			return err
		}

		if exportCmdConfig.out == "-" {
			_, err := buf.WriteTo(cmd.OutOrStdout())
			return err
		}
		if err := datastore.SaveToLocal(&buf, exportCmdConfig.out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "        -- Exported %d log(s) to %s.\n", doc.Count, exportCmdConfig.out)
		return nil
	},
}

var downloadCmdConfig struct {
	out string
}

var downloadCmd = &cobra.Command{
	Use:   "download <key>",
	Short: "Download an object from the recordings bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := downloadCmdConfig.out
		if out == "" {
			out = path.Base(args[0])
		}

		err := client.DownloadFile(cmd.Context(), args[0], out)
		if errors.IsNotFound(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "The object does not exist.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s to %s\n", args[0], out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportCmdConfig.out, "out", "o", "sample-files/read-all.json", `output file, "-" for stdout`)
	exportCmd.Flags().StringVarP(&exportCmdConfig.format, "format", "f", drivelog.FormatJSON, "output format")
	rootCmd.AddCommand(exportCmd)

	downloadCmd.Flags().StringVarP(&downloadCmdConfig.out, "out", "o", "", "local path (default is the key's base name)")
	rootCmd.AddCommand(downloadCmd)
}
