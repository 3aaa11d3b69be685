// Package ml provides the column-level machine-learning collaborators the
// transform layer delegates to: label encoding and imputation. Both operate
// on one column's values, preserve row count, and are deterministic given
// fitted parameters.
package ml

import (
	"fmt"
	"sort"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
)

// LabelEncoder encodes a column of string labels to label indices and back.
// Fitting assigns indices by the sorted order of the distinct labels, so
// encoding is independent of row order.
type LabelEncoder struct {
	labels []string
	index  map[string]int64
}

// CreateLabelEncoder is a factory for LabelEncoders
func CreateLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Labels returns the fitted labels, in index order
func (le *LabelEncoder) Labels() []string {
	return le.labels
}

// Fit fits the encoder on a set of labels, deduplicating and assigning
// indices in sorted order. The caller may gather labels from any number of
// column fragments; only the set matters.
func (le *LabelEncoder) Fit(labels []string) {
	distinct := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		distinct[label] = struct{}{}
	}
	le.labels = make([]string, 0, len(distinct))
	for label := range distinct {
		le.labels = append(le.labels, label)
	}
	sort.Strings(le.labels)
	le.index = make(map[string]int64, len(le.labels))
	for i, label := range le.labels {
		le.index[label] = int64(i)
	}
}

// FitTransform fits the encoder on a column's values and returns the
// encoded label indices. Values are labelled by their natural string form;
// the null marker passes through unencoded.
func (le *LabelEncoder) FitTransform(values []interface{}) ([]interface{}, error) {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if colops.IsNull(v) {
			continue
		}
		labels = append(labels, cast.FormatValue(v))
	}
	le.Fit(labels)
	return le.Transform(values)
}

// Transform encodes a column's values using already fitted labels
func (le *LabelEncoder) Transform(values []interface{}) ([]interface{}, error) {
	if le.index == nil {
		return nil, fmt.Errorf("LabelEncoder has not been fitted")
	}
	encoded := make([]interface{}, len(values))
	for i, v := range values {
		if colops.IsNull(v) {
			continue
		}
		idx, ok := le.index[cast.FormatValue(v)]
		if !ok {
			return nil, fmt.Errorf("label %s was not seen during fitting", cast.FormatValue(v))
		}
		encoded[i] = idx
	}
	return encoded, nil
}

// InverseTransform maps a column of label indices back to the fitted labels
func (le *LabelEncoder) InverseTransform(values []interface{}) ([]interface{}, error) {
	if le.labels == nil {
		return nil, fmt.Errorf("LabelEncoder has not been fitted")
	}
	decoded := make([]interface{}, len(values))
	for i, v := range values {
		if colops.IsNull(v) {
			continue
		}
		idx, ok := v.(int64)
		if !ok || idx < 0 || idx >= int64(len(le.labels)) {
			return nil, fmt.Errorf("value %v is not a fitted label index", v)
		}
		decoded[i] = le.labels[idx]
	}
	return decoded, nil
}
