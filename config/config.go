/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	"github.com/suparena/drivelog/errors"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultRegion    = "us-east-1"
	DefaultTable     = "honda-hackathon1"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config carries everything needed to reach the stores. It is built once at startup
// and passed to the client constructors.
type Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	Profile         string `yaml:"profile,omitempty"`
	AccessKeyID     string `yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty"`
	SessionToken    string `yaml:"sessionToken,omitempty"`
	Table           string `yaml:"table"`
	Bucket          string `yaml:"bucket,omitempty"`
	LogLevel        string `yaml:"logLevel"`
	LogFormat       string `yaml:"logFormat"`
}

// Default returns a Config holding only default values
func Default() *Config {
	return &Config{
		Region:    DefaultRegion,
		Table:     DefaultTable,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// envBinding maps environment variable names, in priority order, to a Config field.
type envBinding struct {
	names []string
	field func(*Config) *string
}

var envBindings = []envBinding{
	{[]string{"AWS_REGION", "AWS_DEFAULT_REGION"}, func(c *Config) *string { return &c.Region }},
	{[]string{"DRIVELOG_ENDPOINT"}, func(c *Config) *string { return &c.Endpoint }},
	{[]string{"AWS_PROFILE"}, func(c *Config) *string { return &c.Profile }},
	{[]string{"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY"}, func(c *Config) *string { return &c.AccessKeyID }},
	{[]string{"AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY"}, func(c *Config) *string { return &c.SecretAccessKey }},
	{[]string{"AWS_SESSION_TOKEN"}, func(c *Config) *string { return &c.SessionToken }},
	{[]string{"DRIVELOG_TABLE", "AWS_DDB_TABLE"}, func(c *Config) *string { return &c.Table }},
	{[]string{"DRIVELOG_BUCKET"}, func(c *Config) *string { return &c.Bucket }},
	{[]string{"DRIVELOG_LOG_LEVEL"}, func(c *Config) *string { return &c.LogLevel }},
	{[]string{"DRIVELOG_LOG_FORMAT"}, func(c *Config) *string { return &c.LogFormat }},
}

// Load builds a Config from defaults, then the YAML file at yamlPath (skipped when empty),
// then the dotenv files, then the process environment. Later sources win. Missing dotenv
// files are ignored; the process environment is never modified.
func Load(yamlPath string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", yamlPath, err)
		}
	}

	dotenv := make(map[string]string)
	for _, file := range envFiles {
		vals, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range vals {
			dotenv[k] = v
		}
	}

	cfg.apply(func(name string) (string, bool) {
		v, ok := dotenv[name]
		return v, ok && v != ""
	})
	cfg.apply(func(name string) (string, bool) {
		v, ok := os.LookupEnv(name)
		return v, ok && v != ""
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) {
	for _, b := range envBindings {
		for _, name := range b.names {
			if v, ok := lookup(name); ok {
				*b.field(c) = v
				break
			}
		}
	}
}

// Validate checks the settings every client needs
func (c *Config) Validate() error {
	if c.Region == "" {
		return errors.NewValidationError("region", "must not be empty")
	}
	if c.Table == "" {
		return errors.NewValidationError("table", "must not be empty")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.NewValidationError("credentials", "access key id and secret access key must be set together")
	}
	return nil
}

// HasStaticCredentials reports whether explicit keys were configured
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// AWSConfig loads an aws.Config for the configured region. Static credentials are used when
// set; otherwise the SDK's default chain (env, shared profile, instance role) applies.
func (c *Config) AWSConfig(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.Profile))
	}
	if c.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}
