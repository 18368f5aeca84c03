// SPDX-License-Identifier: MIT

package matrix

// Test bridge: exposes test-only kernels to the black-box matrix_test package.
// Compiled only with the package tests, so the production API stays unchanged.
var (
	// ExportedMul exposes mul, used to verify A·A⁻¹ and QᵀQ reconstructions.
	ExportedMul = mul
)

const opMul = "Mul"

// mul computes the product a·b into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: Time O(r*k*c), Space O(r*c).
func mul(a, b Matrix) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	ad, err := denseOf(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(ad.r, bd.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k int
		aik     float64
	)
	// i→k→j order keeps the inner loop on contiguous rows of b and out.
	for i = 0; i < ad.r; i++ {
		for k = 0; k < ad.c; k++ {
			aik = ad.data[i*ad.c+k]
			for j = 0; j < bd.c; j++ {
				out.data[i*out.c+j] += aik * bd.data[k*bd.c+j]
			}
		}
	}

	return out, nil
}
