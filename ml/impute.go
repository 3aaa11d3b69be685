package ml

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/errors"
)

// Strategy selects how an Imputer fills missing values
type Strategy string

const (
	// Mean replaces missing values with the column mean; numeric data only
	Mean Strategy = "mean"
	// Median replaces missing values with the column median; numeric data only
	Median Strategy = "median"
	// MostFrequent replaces missing values with the most frequent value
	MostFrequent Strategy = "most_frequent"
	// Constant replaces missing values with FillValue
	Constant Strategy = "constant"
)

// Imputer fills a column's missing values according to a Strategy. Fit
// determines the fill value from a column's present values; ApplyFill then
// substitutes it for every missing value, and may be called independently
// on any slice of the fitted column.
type Imputer struct {
	Strategy  Strategy
	FillValue interface{} // only consulted by the Constant strategy

	fill   interface{}
	fitted bool
}

// CreateImputer is a factory for Imputers
func CreateImputer(strategy Strategy) *Imputer {
	return &Imputer{Strategy: strategy}
}

// Fill returns the fitted fill value
func (im *Imputer) Fill() interface{} {
	return im.fill
}

// Fit determines the fill value from a column's values. The fill depends
// only on the multiset of present values, except for MostFrequent tie
// representatives, which keep the first-encountered original value.
func (im *Imputer) Fit(values []interface{}) error {
	switch im.Strategy {
	case Mean, Median:
		return im.fitNumeric(values)
	case MostFrequent:
		return im.fitMostFrequent(values)
	case Constant:
		im.fill = im.FillValue
		im.fitted = true
		return nil
	default:
		return fmt.Errorf("unknown imputation strategy %s", im.Strategy)
	}
}

// ApplyFill replaces missing values with the fitted fill value. Mean and
// Median coerce present values to decimals, mirroring how numeric
// imputation treats mixed input; the other strategies leave present values
// untouched.
func (im *Imputer) ApplyFill(values []interface{}) ([]interface{}, error) {
	if !im.fitted {
		return nil, fmt.Errorf("Imputer has not been fitted")
	}
	imputed := make([]interface{}, len(values))
	if im.Strategy == Mean || im.Strategy == Median {
		for i, v := range values {
			f := cast.ToFloat(v)
			if math.IsNaN(f) {
				imputed[i] = im.fill
			} else {
				imputed[i] = f
			}
		}
		return imputed, nil
	}
	for i, v := range values {
		if colops.IsNull(v) {
			imputed[i] = im.fill
		} else {
			imputed[i] = v
		}
	}
	return imputed, nil
}

// FitTransform fits the fill value on a whole column and returns the column
// with missing values replaced
func (im *Imputer) FitTransform(values []interface{}) ([]interface{}, error) {
	if err := im.Fit(values); err != nil {
		return nil, err
	}
	return im.ApplyFill(values)
}

func (im *Imputer) fitNumeric(values []interface{}) error {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		f := cast.ToFloat(v)
		if !math.IsNaN(f) {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return errors.EmptyTableError{}
	}
	if im.Strategy == Mean {
		total := 0.0
		for _, f := range present {
			total += f
		}
		im.fill = total / float64(len(present))
	} else {
		sort.Float64s(present)
		mid := len(present) / 2
		if len(present)%2 == 0 {
			im.fill = (present[mid-1] + present[mid]) / 2
		} else {
			im.fill = present[mid]
		}
	}
	im.fitted = true
	return nil
}

func (im *Imputer) fitMostFrequent(values []interface{}) error {
	counts := make(map[string]int64)
	first := make(map[string]interface{})
	for _, v := range values {
		if colops.IsNull(v) {
			continue
		}
		key := cast.FormatValue(v)
		counts[key]++
		if _, ok := first[key]; !ok {
			first[key] = v
		}
	}
	if len(counts) == 0 {
		return errors.EmptyTableError{}
	}
	var fillKey string
	var fillCount int64 = -1
	for key, count := range counts {
		// ties break on ascending value, independent of map order
		if count > fillCount || (count == fillCount && key < fillKey) {
			fillKey = key
			fillCount = count
		}
	}
	im.fill = first[fillKey]
	im.fitted = true
	return nil
}
