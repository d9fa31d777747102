/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Root of command-line argument parsing.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/suparena/drivelog"
	"github.com/suparena/drivelog/config"
	"github.com/suparena/drivelog/datastore/ddb"
	"github.com/suparena/drivelog/datastore/paging"
	"github.com/suparena/drivelog/datastore/s3blob"
	"github.com/suparena/drivelog/logging"
)

var rootCmdConfig struct {
	configFile string
	envFile    string
	logLevel   string
}

var (
	client *drivelog.Client
	logger *logrus.Logger
)

// newClient wires the domain client to DynamoDB and S3. Tests replace it.
var newClient = func(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*drivelog.Client, error) {
	store, err := ddb.NewDynamodbDataStoreFromConfig(ctx, cfg, ddb.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	opts := []drivelog.Option{
		drivelog.WithTable(cfg.Table),
		drivelog.WithLogger(logger),
	}
	if cfg.Bucket != "" {
		blobs, err := s3blob.NewFromConfig(ctx, cfg, s3blob.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, drivelog.WithBlobStore(blobs))
	}

	return drivelog.NewClient(paging.NewRunner(store, paging.WithLogger(logger)), opts...), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drivelog",
	Short: "Query vehicle drive logs and download drive recordings",
	Long: `drivelog reads drive logs from a DynamoDB table keyed by driveid and
logtime, and downloads recordings from an S3 bucket. Every query pages
through the table until the result set is complete.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdConfig.configFile, rootCmdConfig.envFile)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if rootCmdConfig.logLevel != "" {
			level = rootCmdConfig.logLevel
		}
		logger, err = logging.NewWithOutput(cmd.ErrOrStderr(), level, cfg.LogFormat)
		if err != nil {
			return err
		}

		client, err = newClient(cmd.Context(), cfg, logger)
		return err
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if logger == nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		} else {
			logger.Error(err)
		}
		os.Exit(1)
	}
}

func parseInt(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, s)
	}
	return n, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.envFile, "env-file", ".env", "dotenv file with AWS settings")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.logLevel, "log-level", "", "log level (overrides config)")
}
