package cast

import (
	"math"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-colops/colops"
)

// ToFloat coerces a raw value to float64 for numeric binning. Values which
// cannot be coerced (including the null marker) become NaN, a sentinel
// which never falls inside any histogram bin.
func ToFloat(v interface{}) float64 {
	if colops.IsNull(v) {
		return math.NaN()
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if isIntLiteral(n) {
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return float64(i)
			}
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

var (
	emailRegexp      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	urlRegexp        = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
	zipCodeRegexp    = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
	creditCardRegexp = regexp.MustCompile(`^(?:\d[ -]?){12,18}\d$`)
)

// A Predicate is a pure boolean test deciding whether a raw value matches a
// profiler dtype. Predicates are the sole arbiter of match vs mismatch in
// mismatch classification; the null marker is classified separately and is
// never passed to a Predicate.
type Predicate func(v interface{}) bool

// PredicateFor returns the classification Predicate for a profiler dtype
func PredicateFor(pt colops.ProfilerType) Predicate {
	switch pt {
	case colops.ProfilerInt:
		return isIntValue
	case colops.ProfilerDecimal:
		return isDecimalValue
	case colops.ProfilerString:
		return isStringValue
	case colops.ProfilerBool:
		return isBoolValue
	case colops.ProfilerDate:
		return isDateValue
	case colops.ProfilerEmail:
		return matchString(emailRegexp)
	case colops.ProfilerURL:
		return matchString(urlRegexp)
	case colops.ProfilerIP:
		return isIPValue
	case colops.ProfilerZipCode:
		return matchString(zipCodeRegexp)
	case colops.ProfilerCreditCard:
		return matchString(creditCardRegexp)
	case colops.ProfilerGender:
		return isGenderValue
	case colops.ProfilerMissing:
		return func(v interface{}) bool { return colops.IsNull(v) }
	default:
		return func(v interface{}) bool { return false }
	}
}

func isIntValue(v interface{}) bool {
	switch n := v.(type) {
	case int64, int, int32:
		return true
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0) && !math.IsNaN(n)
	case string:
		return isIntLiteral(n)
	default:
		return false
	}
}

func isDecimalValue(v interface{}) bool {
	switch n := v.(type) {
	case float64, float32, int64, int, int32:
		return true
	case string:
		_, err := strconv.ParseFloat(n, 64)
		return err == nil
	default:
		return false
	}
}

func isStringValue(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isBoolValue(v interface{}) bool {
	switch n := v.(type) {
	case bool:
		return true
	case string:
		_, err := strconv.ParseBool(n)
		return err == nil
	default:
		return false
	}
}

func isDateValue(v interface{}) bool {
	switch n := v.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse(DefaultDateLayout, n)
		return err == nil
	default:
		return false
	}
}

func isIPValue(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return net.ParseIP(s) != nil
}

func isGenderValue(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.ToLower(s) {
	case "male", "female", "m", "f", "nonbinary", "non-binary":
		return true
	}
	return false
}

func matchString(re *regexp.Regexp) Predicate {
	return func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		return re.MatchString(s)
	}
}
