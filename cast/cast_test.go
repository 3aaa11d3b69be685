package cast

import (
	"math"
	"testing"
	"time"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/stretchr/testify/require"
)

func TestCastIntNanPolicy(t *testing.T) {
	caster := For(colops.IntType, Nan)
	input := []interface{}{"1", "x", nil, "3.5"}
	expected := []interface{}{int64(1), nil, nil, int64(3)}
	for i, v := range input {
		out, err := caster(v)
		require.Nil(t, err)
		require.Equal(t, expected[i], out)
	}
}

func TestCastIntRaisePolicy(t *testing.T) {
	caster := For(colops.IntType, Raise)
	out, err := caster("1")
	require.Nil(t, err)
	require.Equal(t, int64(1), out)

	_, err = caster("x")
	require.NotNil(t, err)
	castErr, ok := err.(errors.CastError)
	require.True(t, ok)
	require.Equal(t, "x", castErr.Value)
	require.Equal(t, "int", castErr.Dtype)
}

func TestCastNullNeverFails(t *testing.T) {
	for _, dtype := range []colops.DataType{colops.IntType, colops.DecimalType, colops.StringType, colops.BoolType, colops.DateType} {
		caster := For(dtype, Raise)
		out, err := caster(nil)
		require.Nil(t, err)
		require.Nil(t, out)
	}
}

func TestCastIntNonFiniteFloats(t *testing.T) {
	caster := For(colops.IntType, Nan)
	for _, v := range []interface{}{math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1)), "NaN", "+Inf"} {
		out, err := caster(v)
		require.Nil(t, err)
		require.Nil(t, out, "casting %v to int must resolve to null, not a truncated sentinel", v)
	}

	raising := For(colops.IntType, Raise)
	_, err := raising(math.NaN())
	require.NotNil(t, err)
	castErr, ok := err.(errors.CastError)
	require.True(t, ok)
	require.Equal(t, "int", castErr.Dtype)
}

func TestCastIntFastPathPrecision(t *testing.T) {
	caster := For(colops.IntType, Raise)
	// a value the fast literal path accepts but float64 cannot hold exactly
	out, err := caster("9007199254740993")
	require.Nil(t, err)
	require.Equal(t, int64(9007199254740993), out)
}

func TestCastDecimal(t *testing.T) {
	caster := For(colops.DecimalType, Nan)
	out, err := caster("3.5")
	require.Nil(t, err)
	require.Equal(t, 3.5, out)

	out, err = caster(int64(2))
	require.Nil(t, err)
	require.Equal(t, 2.0, out)

	out, err = caster("not a number")
	require.Nil(t, err)
	require.Nil(t, out)
}

func TestCastString(t *testing.T) {
	caster := For(colops.StringType, Nan)
	out, err := caster(int64(42))
	require.Nil(t, err)
	require.Equal(t, "42", out)

	out, err = caster(3.5)
	require.Nil(t, err)
	require.Equal(t, "3.5", out)

	out, err = caster(true)
	require.Nil(t, err)
	require.Equal(t, "true", out)
}

func TestCastBool(t *testing.T) {
	caster := For(colops.BoolType, Nan)
	out, err := caster("true")
	require.Nil(t, err)
	require.Equal(t, true, out)

	out, err = caster(int64(0))
	require.Nil(t, err)
	require.Equal(t, false, out)

	out, err = caster("maybe")
	require.Nil(t, err)
	require.Nil(t, out)
}

func TestCastDate(t *testing.T) {
	caster := Compile(Params{Dtype: colops.DateType, OnError: Raise})
	out, err := caster("2021-06-01")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), out)

	_, err = caster("06/01/2021")
	require.IsType(t, errors.CastError{}, err)

	caster = Compile(Params{Dtype: colops.DateType, OnError: Raise, DateLayout: "01/02/2006"})
	out, err = caster("06/01/2021")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), out)
}

func TestToFloat(t *testing.T) {
	require.Equal(t, 3.5, ToFloat("3.5"))
	require.Equal(t, 2.0, ToFloat(int64(2)))
	require.True(t, math.IsNaN(ToFloat("x")))
	require.True(t, math.IsNaN(ToFloat(nil)))
}
