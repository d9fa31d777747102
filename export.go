/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package drivelog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/drivelog/registry"
	"github.com/suparena/drivelog/storagemodels"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func init() {
	registry.RegisterEncoder(FormatJSON, func(w io.Writer, v interface{}) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
	registry.RegisterEncoder(FormatYAML, func(w io.Writer, v interface{}) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	})
}

// Export is the document written by ExportAll.
type Export struct {
	Table      string              `json:"table" yaml:"table"`
	ExportedAt strfmt.DateTime     `json:"exportedAt" yaml:"exportedAt"`
	Count      int                 `json:"count" yaml:"count"`
	Items      []storagemodels.Row `json:"items" yaml:"items"`
}

// ExportAll scans the whole table and writes it to w in format.
// An empty format means JSON.
func (c *Client) ExportAll(ctx context.Context, w io.Writer, format string) (*Export, error) {
	if format == "" {
		format = FormatJSON
	}
	enc, err := registry.GetEncoder(format)
	if err != nil {
		return nil, err
	}

	rows, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storagemodels.Row{}
	}

	doc := &Export{
		Table:      c.table,
		ExportedAt: strfmt.DateTime(c.now().UTC()),
		Count:      len(rows),
		Items:      rows,
	}
	if err := enc(w, doc); err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return doc, nil
}

func (c *Client) now() time.Time {
	if c.clock != nil {
		return c.clock()
	}
	return time.Now()
}
