// SPDX-License-Identifier: MIT

package deflate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoYears indicates Run was called with no input.
	ErrNoYears = errors.New("deflate: no years")

	// ErrYearSequence indicates years that are not strictly consecutive and ascending.
	ErrYearSequence = errors.New("deflate: years must be consecutive")
)

// Stages reported by YearError.
const (
	StageBuild              = "build"
	StageBalanceProduction  = "balance production"
	StageBalanceConsumption = "balance consumption"
	StageDeflators          = "deflators"
	StageConvert            = "convert"
)

const (
	opNew = "deflate.New"
	opRun = "deflate.Run"
)

// YearError reports the year and stage at which the pipeline stopped.
type YearError struct {
	Year  int
	Stage string
	Err   error
}

func (e *YearError) Error() string {
	return fmt.Sprintf("deflate: year %d: %s: %v", e.Year, e.Stage, e.Err)
}

func (e *YearError) Unwrap() error { return e.Err }

func deflateErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
