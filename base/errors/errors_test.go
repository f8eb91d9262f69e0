// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := fmt.Errorf("bad value")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, fmt.Errorf("bad value")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("bad")) })
}

func TestIs(t *testing.T) {
	base := New("base")
	wrapped := fmt.Errorf("context: %w", base)
	assert.True(t, Is(wrapped, base))
	assert.False(t, Is(New("other"), base))
}
