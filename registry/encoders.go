/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/drivelog/errors"
)

// EncodeFunc writes v to w in one export format.
type EncodeFunc func(w io.Writer, v interface{}) error

var (
	encoders = make(map[string]EncodeFunc)
	mu       sync.RWMutex
)

// RegisterEncoder registers fn under format.
// If an encoder is already registered for format, it panics to prevent accidental overrides.
func RegisterEncoder(format string, fn EncodeFunc) {
	key := strings.ToLower(format)

	mu.Lock()
	defer mu.Unlock()
	if _, exists := encoders[key]; exists {
		panic(fmt.Sprintf("encoder registry: format %q already registered", format))
	}
	encoders[key] = fn
}

// GetEncoder returns the encoder registered for format.
func GetEncoder(format string) (EncodeFunc, error) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, errors.NewValidationError("format", fmt.Sprintf("no encoder registered for %q", format))
	}
	return fn, nil
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
