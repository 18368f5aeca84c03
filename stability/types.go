// SPDX-License-Identifier: MIT

package stability

import "fmt"

// Method selects one of the four equivalent positive-definiteness tests.
type Method int

const (
	// Cholesky succeeds iff every pivot of C = L·Lᵀ is strictly positive.
	Cholesky Method = iota + 1

	// Eigenvalues requires every eigenvalue to be strictly positive.
	Eigenvalues

	// LeadingMinors is Sylvester's criterion on the upper-left k×k blocks.
	LeadingMinors

	// TrailingMinors applies the same test to the lower-right k×k blocks.
	TrailingMinors
)

// Methods lists every method in evaluation order.
func Methods() []Method {
	return []Method{Cholesky, Eigenvalues, LeadingMinors, TrailingMinors}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case Cholesky:
		return "cholesky"
	case Eigenvalues:
		return "eigenvalues"
	case LeadingMinors:
		return "leading-minors"
	case TrailingMinors:
		return "trailing-minors"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Verdict is the outcome of a single method.
//
// Values holds what the method examined, in evaluation order:
//   - Cholesky: pivots d_1..d_k, stopping at the first failing one.
//   - Eigenvalues: all eigenvalues, ascending.
//   - LeadingMinors / TrailingMinors: all n minors D_1..D_n.
type Verdict struct {
	Method Method
	Stable bool
	Failed int // 1-based index of the first failing criterion; 0 when stable
	Values []float64
}

// Report collects one Verdict per method, in Methods() order.
type Report struct {
	Verdicts []Verdict
}

// Stable reports whether every method found the matrix positive definite.
func (r Report) Stable() bool {
	if len(r.Verdicts) == 0 {
		return false
	}
	for _, v := range r.Verdicts {
		if !v.Stable {
			return false
		}
	}

	return true
}

// Consistent reports whether all methods reached the same verdict.
func (r Report) Consistent() bool {
	for _, v := range r.Verdicts {
		if v.Stable != r.Verdicts[0].Stable {
			return false
		}
	}

	return true
}

// Verdict returns the verdict of method m, if it was evaluated.
func (r Report) Verdict(m Method) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Method == m {
			return v, true
		}
	}

	return Verdict{}, false
}
