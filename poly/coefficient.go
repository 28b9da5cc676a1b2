// SPDX-License-Identifier: MIT

package poly

import (
	"strconv"

	"github.com/katalvlaran/momsos/expr"
)

// Coefficient is the arithmetic a polynomial needs from its coefficients.
// The zero value of T must be the additive identity.
//
// Times may fail: an affine coefficient cannot represent the product of two
// variables and reports expr.ErrNonlinear.
type Coefficient[T any] interface {
	Plus(T) T
	Times(T) (T, error)
	IsZero() bool
}

// Real is a plain float64 coefficient.
type Real float64

// Compile-time checks for both coefficient kinds.
var (
	_ Coefficient[Real]        = Real(0)
	_ Coefficient[expr.Affine] = expr.Affine{}
)

// Plus returns r + o.
func (r Real) Plus(o Real) Real { return r + o }

// Times returns r·o; it never fails.
func (r Real) Times(o Real) (Real, error) { return r * o, nil }

// IsZero reports r == 0.
func (r Real) IsZero() bool { return r == 0 }

// String uses the shortest exact decimal form.
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

// negative reports whether a coefficient prints with a leading minus.
func negative[T any](c T) bool {
	switch v := any(c).(type) {
	case Real:
		return v < 0
	default:
		return false
	}
}
