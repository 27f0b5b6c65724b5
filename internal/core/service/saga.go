package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/horizonbank/dashboard-api/internal/api/metrics"
)

// undoFunc reverses one previously completed provisioning step.
type undoFunc func(ctx context.Context) error

type undoEntry struct {
	step string
	fn   undoFunc
}

// compensator collects undo actions for locally-owned resources created during
// a multi-step sequence. On failure the stack is unwound in reverse creation
// order. Undo failures are logged and counted, never propagated: the original
// error is what the caller must see.
type compensator struct {
	log   zerolog.Logger
	undos []undoEntry
}

func newCompensator(log zerolog.Logger) *compensator {
	return &compensator{log: log}
}

// push registers an undo for a resource that now exists.
func (c *compensator) push(step string, fn undoFunc) {
	c.undos = append(c.undos, undoEntry{step: step, fn: fn})
}

// unwind runs all registered undos, most recent first.
func (c *compensator) unwind(ctx context.Context) {
	for i := len(c.undos) - 1; i >= 0; i-- {
		u := c.undos[i]
		if err := u.fn(ctx); err != nil {
			c.log.Error().Err(err).Str("step", u.step).Msg("compensating action failed")
			metrics.CompensationsTotal.WithLabelValues(u.step, "failure").Inc()
			continue
		}
		c.log.Info().Str("step", u.step).Msg("compensating action applied")
		metrics.CompensationsTotal.WithLabelValues(u.step, "success").Inc()
	}
	c.undos = nil
}
