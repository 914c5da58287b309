// Package slug convierte nombres de producto en identificadores aptos para URL.
package slug

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// MaxAttempts limita la búsqueda de un sufijo libre en Unique.
const MaxAttempts = 1000

var ErrExhausted = errors.New("slug: no free suffix found")

// Make normaliza s: minúsculas, solo [a-z0-9], espacios y guiones; los
// espacios pasan a ser un guion. Nunca devuelve guiones al inicio, al final
// ni repetidos. Puede devolver "" si no queda ningún carácter válido.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}

// Batch asigna slugs únicos dentro de una misma carga. La primera aparición
// de un slug base se usa tal cual; las siguientes reciben -1, -2, ...
// No consulta el store. Un nombre sin caracteres utilizables da "" y queda
// para que el store lo reemplace por el id.
type Batch struct {
	next map[string]int
	used map[string]bool
}

func NewBatch() *Batch {
	return &Batch{next: map[string]int{}, used: map[string]bool{}}
}

// Next devuelve el slug para name dentro del lote.
func (b *Batch) Next(name string) string {
	base := Make(name)
	if base == "" {
		return ""
	}
	candidate := base
	for b.used[candidate] {
		b.next[base]++
		candidate = base + "-" + strconv.Itoa(b.next[base])
	}
	b.used[candidate] = true
	return candidate
}

// TakenFunc informa si un slug ya existe en el store.
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

// Unique prueba base, base-1, base-2, ... hasta que taken devuelva false.
func Unique(ctx context.Context, base string, taken TakenFunc) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		candidate := WithSuffix(base, i)
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

// WithSuffix devuelve base para n == 0 y base-n en otro caso.
func WithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
