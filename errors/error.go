package errors

import (
	"fmt"
)

// UnknownColumnError occurs when a column specification references a column
// absent from a Table's Schema
type UnknownColumnError struct{ Name string }

// Error returns a textual representation of this UnknownColumnError
func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("Column %s does not exist", e.Name)
}

// ColumnCountMismatchError occurs when the number of supplied output columns
// does not equal the number of input columns
type ColumnCountMismatchError struct {
	Inputs  int
	Outputs int
}

// Error returns a textual representation of this ColumnCountMismatchError
func (e ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("Expected %d output columns but %d were supplied", e.Inputs, e.Outputs)
}

// UnsupportedDtypeError occurs when an aggregation is requested on a column
// whose declared data type is incompatible with it
type UnsupportedDtypeError struct {
	Name  string
	Dtype string
}

// Error returns a textual representation of this UnsupportedDtypeError
func (e UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("Column %s has unsupported data type %s", e.Name, e.Dtype)
}

// CastError occurs when a value fails to parse under the raise error policy
type CastError struct {
	Value interface{}
	Dtype string
}

// Error returns a textual representation of this CastError
func (e CastError) Error() string {
	return fmt.Sprintf("Unable to cast value %v to %s", e.Value, e.Dtype)
}

// PartitionError wraps a failure raised by a per-partition function,
// identifying the failing partition
type PartitionError struct {
	Partition int
	Cause     error
}

// Error returns a textual representation of this PartitionError
func (e PartitionError) Error() string {
	return fmt.Sprintf("Partition %d failed: %v", e.Partition, e.Cause)
}

// Unwrap returns the underlying cause of this PartitionError
func (e PartitionError) Unwrap() error {
	return e.Cause
}

// UnknownPartitionError occurs when a partition cache lookup references a
// partition which was never stored
type UnknownPartitionError struct{ ID string }

// Error returns a textual representation of this UnknownPartitionError
func (e UnknownPartitionError) Error() string {
	return fmt.Sprintf("Partition %s does not exist in cache", e.ID)
}

// EmptyTableError occurs when an operation which requires present values is
// run against a Table or column with none
type EmptyTableError struct{}

// Error returns a textual representation of this EmptyTableError
func (e EmptyTableError) Error() string {
	return "no values present"
}
