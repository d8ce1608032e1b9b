// SPDX-License-Identifier: MIT

package sector

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates inputs whose dimensions do not line up.
	ErrShapeMismatch = errors.New("sector: shape mismatch")

	// ErrSingularLeontief indicates I − A could not be inverted reliably.
	// It wraps matrix.ErrSingular or matrix.ErrIllConditioned.
	ErrSingularLeontief = errors.New("sector: Leontief matrix is singular")
)

const opConvert = "sector.Convert"

func sectorErrorf(err error) error {
	return fmt.Errorf("%s: %w", opConvert, err)
}
