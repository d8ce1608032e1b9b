// SPDX-License-Identifier: MIT

package logger

import "context"

const runIDKey = "run_id"

type runIDCtxKey struct{}

// WithRunID stamps ctx with the run identifier; every entry logged with ctx carries it.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDCtxKey{}, id)
}

// RunID returns the identifier stored by WithRunID.
func RunID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDCtxKey{}).(string)

	return id, ok && id != ""
}
