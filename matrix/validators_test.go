package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ziptie/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(nilDense), matrix.ErrNilMatrix)

	sq, _ := matrix.NewSquare(2)
	rect, _ := matrix.NewDense(2, 3)
	require.NoError(t, matrix.ValidateNotNil(sq))
	require.NoError(t, matrix.ValidateSquare(sq))
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSquare(nilDense), matrix.ErrNilMatrix)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateFinite([]float64{0, -1, 1e300}))
	require.ErrorIs(t, matrix.ValidateFinite([]float64{0, math.Inf(-1)}), matrix.ErrNaNInf)
}
