/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/drivelog/errors"
)

func TestRegisterAndGetEncoder(t *testing.T) {
	RegisterEncoder("Test-Upper", func(w io.Writer, v interface{}) error {
		_, err := io.WriteString(w, "encoded")
		return err
	})

	enc, err := GetEncoder("test-upper")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc(&buf, nil))
	assert.Equal(t, "encoded", buf.String())
	assert.Contains(t, Formats(), "test-upper")
}

func TestRegisterEncoderTwicePanics(t *testing.T) {
	fn := func(w io.Writer, v interface{}) error { return nil }
	RegisterEncoder("test-dup", fn)

	assert.Panics(t, func() {
		RegisterEncoder("TEST-DUP", fn)
	})
}

func TestGetEncoderUnknown(t *testing.T) {
	_, err := GetEncoder("test-missing")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
