// Package cast implements the value-level casting policy and the
// profiler-dtype classification predicates shared by the transform and
// aggregation layers. Casters are total: every raw value (including the
// null marker) maps to either a concrete value of the target type or, under
// the Nan policy, back to the null marker. The null marker itself always
// casts to the null marker and never raises.
package cast

import (
	"math"
	"strconv"
	"time"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
)

// OnError selects how a Caster treats unparseable values
type OnError int

const (
	// Nan substitutes the canonical null marker for unparseable values
	Nan OnError = iota
	// Raise surfaces a CastError for the first unparseable value
	Raise
)

func (p OnError) String() string {
	if p == Raise {
		return "raise"
	}
	return "nan"
}

// DefaultDateLayout is the reference layout used to parse and print dates
// when no layout is supplied
const DefaultDateLayout = "2006-01-02"

// Params configures a compiled Caster. Explicit parameters keep compiled
// casters referentially transparent and safe to share across workers.
type Params struct {
	Dtype      colops.DataType
	OnError    OnError
	DateLayout string // layout for DateType parsing; DefaultDateLayout if empty
}

// A Caster maps one raw value to a value of a target data type
type Caster func(v interface{}) (interface{}, error)

// For compiles a Caster for a target data type under the given error policy
func For(dtype colops.DataType, onError OnError) Caster {
	return Compile(Params{Dtype: dtype, OnError: onError})
}

// Compile builds a Caster from explicit Params
func Compile(p Params) Caster {
	layout := p.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	switch p.Dtype {
	case colops.IntType:
		return castInt(p.OnError)
	case colops.DecimalType:
		return castDecimal(p.OnError)
	case colops.StringType:
		return castString()
	case colops.BoolType:
		return castBool(p.OnError)
	case colops.DateType:
		return castDate(p.OnError, layout)
	default:
		return func(v interface{}) (interface{}, error) {
			return v, nil
		}
	}
}

// fail resolves an unparseable value according to the error policy
func fail(p OnError, v interface{}, dtype string) (interface{}, error) {
	if p == Raise {
		return nil, errors.CastError{Value: v, Dtype: dtype}
	}
	return nil, nil
}

// isIntLiteral reports whether s consists solely of an optional sign and
// decimal digits. This is the fast literal-detection path taken before the
// general numeric parser; it only accepts strings strconv.ParseInt parses
// exactly, so it never loses precision against a general parse.
func isIntLiteral(s string) bool {
	if len(s) == 0 {
		return false
	}
	start := 0
	if s[0] == '+' || s[0] == '-' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func castInt(p OnError) Caster {
	return func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case float64:
			// int64(NaN) and int64(Inf) are platform-defined garbage
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return fail(p, v, "int")
			}
			return int64(n), nil
		case float32:
			f := float64(n)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fail(p, v, "int")
			}
			return int64(f), nil
		case bool:
			if n {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			if isIntLiteral(n) {
				if i, err := strconv.ParseInt(n, 10, 64); err == nil {
					return i, nil
				}
			}
			// general parser: accepts decimal literals, truncating toward zero
			if f, err := strconv.ParseFloat(n, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return int64(f), nil
			}
			return fail(p, v, "int")
		default:
			return fail(p, v, "int")
		}
	}
}

func castDecimal(p OnError) Caster {
	return func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case bool:
			if n {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			if isIntLiteral(n) {
				if i, err := strconv.ParseInt(n, 10, 64); err == nil {
					return float64(i), nil
				}
			}
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, nil
			}
			return fail(p, v, "decimal")
		default:
			return fail(p, v, "decimal")
		}
	}
}

func castString() Caster {
	return func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		return FormatValue(v), nil
	}
}

func castBool(p OnError) Caster {
	return func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		switch n := v.(type) {
		case bool:
			return n, nil
		case int64:
			return n != 0, nil
		case int:
			return n != 0, nil
		case float64:
			return n != 0, nil
		case string:
			if b, err := strconv.ParseBool(n); err == nil {
				return b, nil
			}
			return fail(p, v, "bool")
		default:
			return fail(p, v, "bool")
		}
	}
}

func castDate(p OnError, layout string) Caster {
	return func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		switch n := v.(type) {
		case time.Time:
			return n, nil
		case string:
			if d, err := time.Parse(layout, n); err == nil {
				return d, nil
			}
			return fail(p, v, "date")
		default:
			return fail(p, v, "date")
		}
	}
}

// FormatValue renders a value's natural string form. Used for string
// casting, frequency bucketing and column nesting, so a value has exactly
// one string form across the module.
func FormatValue(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(n)
	case time.Time:
		return n.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
