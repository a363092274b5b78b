// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferDescriptorValidate(t *testing.T) {
	assert.NoError(t, NewBufferDescriptor(0, 3, 3).Validate())
	assert.NoError(t, NewBufferDescriptor(0, 3, 7).Validate())
	assert.NoError(t, NewBufferDescriptor(3, 4, 7).Validate())

	// offsets beyond the first vertex are fine as long as the primvar
	// still fits within the stride.
	assert.NoError(t, NewBufferDescriptor(10, 3, 7).Validate())

	assert.Error(t, BufferDescriptor{}.Validate())
	assert.Error(t, NewBufferDescriptor(-1, 3, 3).Validate())
	assert.Error(t, NewBufferDescriptor(0, 0, 3).Validate())
	assert.Error(t, NewBufferDescriptor(0, 4, 3).Validate())
	assert.Error(t, NewBufferDescriptor(5, 3, 7).Validate())
}

func TestBufferDescriptorLocalOffset(t *testing.T) {
	assert.Equal(t, 0, NewBufferDescriptor(0, 3, 7).LocalOffset())
	assert.Equal(t, 3, NewBufferDescriptor(3, 4, 7).LocalOffset())
	assert.Equal(t, 3, NewBufferDescriptor(10, 3, 7).LocalOffset())
	assert.Equal(t, 0, NewBufferDescriptor(21, 3, 7).LocalOffset())
	assert.Equal(t, 0, BufferDescriptor{Offset: 4}.LocalOffset())
}
