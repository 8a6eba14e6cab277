package workflow

import (
	"context"

	"github.com/rs/zerolog"
)

// undoStep deshace un paso ya aplicado de una transición compuesta.
type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

// compensations pila de pasos a deshacer si un paso posterior falla.
// Con un TxRunner transaccional el rollback ya revierte todo; la pila cubre
// los almacenes sin transacciones y deja constancia en el log.
type compensations struct {
	steps []undoStep
	log   zerolog.Logger
	rec   Recorder
}

func (c *compensations) push(name string, fn func(ctx context.Context) error) {
	c.steps = append(c.steps, undoStep{name: name, fn: fn})
}

// unwind ejecuta los pasos en orden inverso. Un fallo se registra y no detiene el resto.
func (c *compensations) unwind(ctx context.Context, cause error) {
	for i := len(c.steps) - 1; i >= 0; i-- {
		s := c.steps[i]
		err := s.fn(ctx)
		c.rec.Compensation(s.name, err)
		if err != nil {
			c.log.Warn().Err(err).AnErr("cause", cause).Str("step", s.name).Msg("compensación fallida")
			continue
		}
		c.log.Info().AnErr("cause", cause).Str("step", s.name).Msg("paso compensado")
	}
	c.steps = nil
}
