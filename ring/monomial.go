// SPDX-License-Identifier: MIT

package ring

import (
	"fmt"
	"strconv"
	"strings"
)

// Monomial is an exponent tuple (e₁,…,eₙ) standing for x₁^e₁⋯xₙ^eₙ.
//
// Monomials are values: no operation in this module mutates a Monomial it
// receives, and every constructor returns a fresh slice. Use Key for map
// lookups and Equal for comparisons.
type Monomial []int

// NewMonomial copies exps into a Monomial, rejecting an empty tuple or a
// negative exponent.
func NewMonomial(exps ...int) (Monomial, error) {
	if len(exps) == 0 {
		return nil, ringErrorf("NewMonomial", ErrInvalidArgument)
	}
	m := make(Monomial, len(exps))
	for i, e := range exps {
		if e < 0 {
			return nil, ringErrorf("NewMonomial", fmt.Errorf("exponent %d = %d: %w", i, e, ErrInvalidArgument))
		}
		m[i] = e
	}

	return m, nil
}

// One returns the constant monomial (0,…,0) of arity n.
func One(n int) (Monomial, error) {
	if n <= 0 {
		return nil, ringErrorf("One", ErrInvalidArgument)
	}

	return make(Monomial, n), nil
}

// Arity is the number of variables.
func (m Monomial) Arity() int { return len(m) }

// Degree is the total degree Σeᵢ.
func (m Monomial) Degree() int {
	d := 0
	for _, e := range m {
		d += e
	}

	return d
}

// IsConstant reports whether every exponent is zero.
func (m Monomial) IsConstant() bool {
	for _, e := range m {
		if e != 0 {
			return false
		}
	}

	return true
}

// Add returns the elementwise sum, i.e. the exponent of the product m·o.
func (m Monomial) Add(o Monomial) (Monomial, error) {
	if len(m) != len(o) {
		return nil, ringErrorf("Monomial.Add", ErrArityMismatch)
	}
	out := make(Monomial, len(m))
	for i := range m {
		out[i] = m[i] + o[i]
	}

	return out, nil
}

// Equal reports elementwise equality.
func (m Monomial) Equal(o Monomial) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (m Monomial) Clone() Monomial {
	out := make(Monomial, len(m))
	copy(out, m)

	return out
}

// Key is the canonical map key of m: exponents joined by commas ("2,0,1").
// Two monomials have the same key iff they are Equal.
func (m Monomial) Key() string {
	var b strings.Builder
	for i, e := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e))
	}

	return b.String()
}

// String renders m in variable notation, e.g. "x1^2*x3". The constant
// monomial renders as "1".
func (m Monomial) String() string {
	var parts []string
	for i, e := range m {
		switch {
		case e == 0:
			continue
		case e == 1:
			parts = append(parts, "x"+strconv.Itoa(i+1))
		default:
			parts = append(parts, "x"+strconv.Itoa(i+1)+"^"+strconv.Itoa(e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, "*")
}

// Pow returns Πxᵢ^eᵢ at point. len(point) must equal the arity; callers in
// this module validate it once per polynomial rather than per monomial.
func (m Monomial) Pow(point []float64) float64 {
	v := 1.0
	var k int
	for i, e := range m {
		for k = 0; k < e; k++ {
			v *= point[i]
		}
	}

	return v
}

// Compare orders monomials canonically: lower total degree first, then
// descending lexicographic within one degree. It returns -1 when a precedes
// b, +1 when b precedes a, and 0 when they are equal. Monomials of different
// arity compare by arity.
func Compare(a, b Monomial) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}
	da, db := a.Degree(), b.Degree()
	if da != db {
		if da < db {
			return -1
		}

		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			// larger leading exponent comes first
			if a[i] > b[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}
