// Package ledger valida y genera números de ledger (solo dígitos).
package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jhoicas/inventario-mmg/internal/domain"
)

var pattern = regexp.MustCompile(`^[0-9]+$`)

// MaxLength longitud máxima aceptada.
const MaxLength = 32

// Valid indica si s cumple ^[0-9]+$.
func Valid(s string) bool {
	return len(s) <= MaxLength && pattern.MatchString(s)
}

// Normalize recorta espacios y valida; cadena vacía se devuelve tal cual (el llamador genera uno).
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if !Valid(s) {
		return "", domain.NewValidationError("ledger_number", "solo se permiten dígitos (máx. 32)")
	}
	return s, nil
}

// Generator produce números únicos dentro del proceso: milisegundos Unix + secuencia de 3 dígitos.
type Generator struct {
	now func() time.Time
	seq atomic.Uint32
}

// NewGenerator usa el reloj del sistema.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock reloj fijo (tests).
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next devuelve el siguiente número.
func (g *Generator) Next() string {
	n := g.seq.Add(1) % 1000
	return fmt.Sprintf("%d%03d", g.now().UnixMilli(), n)
}
