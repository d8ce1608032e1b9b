// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownClass indicates a preset name that is not registered.
	ErrUnknownClass = errors.New("layout: unknown table class")

	// ErrInvalidLayout indicates an internally inconsistent Layout.
	ErrInvalidLayout = errors.New("layout: invalid layout")

	// ErrTableShape indicates an input table whose dimensions do not match the layout.
	ErrTableShape = errors.New("layout: table shape mismatch")
)

const (
	opPreset     = "layout.Preset"
	opValidate   = "layout.Validate"
	opCheckShape = "layout.CheckShape"
	opPartition  = "layout.Partition"
)

func layoutErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
