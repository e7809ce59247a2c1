// Package barcode genera candidatos de código de barras para productos
// sin código propio. La unicidad la garantiza el caso de uso consultando
// el catálogo; aquí solo se produce el texto candidato.
package barcode

import (
	"fmt"
	"math/rand"
	"time"
)

// Prefix identifica los códigos generados internamente por el kiosco.
const Prefix = "KSK"

// Generator produce candidatos de barcode: KSK + últimos 7 dígitos del
// timestamp en milisegundos + 4 dígitos aleatorios. now y randInt son
// inyectables para tests deterministas.
type Generator struct {
	now     func() time.Time
	randInt func(n int) int
}

// NewGenerator construye el generador con reloj y aleatorio reales.
func NewGenerator() *Generator {
	return &Generator{
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// NewGeneratorWith permite fijar reloj y fuente aleatoria.
func NewGeneratorWith(now func() time.Time, randInt func(n int) int) *Generator {
	return &Generator{now: now, randInt: randInt}
}

// Candidate devuelve un candidato de barcode. No consulta el catálogo.
func (g *Generator) Candidate() string {
	ms := g.now().UnixMilli()
	ts := fmt.Sprintf("%d", ms)
	if len(ts) > 7 {
		ts = ts[len(ts)-7:]
	}
	return fmt.Sprintf("%s%s%04d", Prefix, ts, g.randInt(10000))
}
