/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package drivelog

import (
	"context"
	"fmt"

	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/storagemodels"
)

// GPSFix is the vehicle position recorded with one log entry.
type GPSFix struct {
	LogTime int64   `json:"logtime"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Alt     float64 `json:"alt"`
}

func (g GPSFix) String() string {
	return fmt.Sprintf("Lat: %v, Lon: %v, Alt: %v", g.Lat, g.Lon, g.Alt)
}

// gpsProjection is the attribute set requested for GPS queries
var gpsProjection = []string{AttrGPSLat, AttrGPSLon, AttrGPSAlt, AttrLogTime}

// LogTime reads the logtime attribute of a row.
func LogTime(row storagemodels.Row) (int64, error) {
	v, ok := row.Get(AttrLogTime)
	if !ok {
		return 0, errors.NewValidationError(AttrLogTime, "log does not contain a logtime")
	}
	t, err := v.Int64()
	if err != nil {
		return 0, errors.NewValidationError(AttrLogTime, err.Error())
	}
	return t, nil
}

// GPSFixFromRow decodes the GPS attributes of a row.
func GPSFixFromRow(row storagemodels.Row) (GPSFix, error) {
	var fix GPSFix

	coords := []struct {
		name string
		dst  *float64
	}{
		{AttrGPSLat, &fix.Lat},
		{AttrGPSLon, &fix.Lon},
		{AttrGPSAlt, &fix.Alt},
	}
	for _, c := range coords {
		v, ok := row.Get(c.name)
		if !ok {
			return GPSFix{}, errors.NewValidationError(c.name, "log does not contain valid GPS data")
		}
		f, err := v.Float64()
		if err != nil {
			return GPSFix{}, errors.NewValidationError(c.name, err.Error())
		}
		*c.dst = f
	}

	if _, ok := row.Get(AttrLogTime); ok {
		t, err := LogTime(row)
		if err != nil {
			return GPSFix{}, err
		}
		fix.LogTime = t
	}
	return fix, nil
}

// QueryAllGPSData returns the GPS track of a drive in logtime order. Only the GPS
// attributes and logtime are read from the store.
func (c *Client) QueryAllGPSData(ctx context.Context, driveID int64) ([]GPSFix, error) {
	spec := c.driveSpec(driveID)
	spec.Projection = gpsProjection

	rows, err := c.fetch(ctx, "gps data", spec)
	if err != nil {
		return nil, err
	}

	fixes := make([]GPSFix, 0, len(rows))
	for i, row := range rows {
		fix, err := GPSFixFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("gps data row %d: %w", i, err)
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}
