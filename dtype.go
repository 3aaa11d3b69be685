package colops

// DataType is the storage-level primitive type of a Column.
type DataType int

const (
	// IntType indicates a column of 64-bit signed integers
	IntType DataType = iota
	// DecimalType indicates a column of 64-bit floating point numbers
	DecimalType
	// StringType indicates a column of variable-length strings
	StringType
	// BoolType indicates a column of booleans
	BoolType
	// DateType indicates a column of calendar timestamps
	DateType
)

// String returns a textual representation of this DataType
func (t DataType) String() string {
	switch t {
	case IntType:
		return "int"
	case DecimalType:
		return "decimal"
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case DateType:
		return "date"
	default:
		return "unknown"
	}
}

// IsNumeric returns true iff values of this DataType can be binned numerically
func (t DataType) IsNumeric() bool {
	return t == IntType || t == DecimalType
}

// ProfilerType is a semantic data-type classification, distinct from the
// storage-level DataType, used by mismatch classification. A column declared
// StringType may, for example, carry a ProfilerType of EmailType.
type ProfilerType string

const (
	// ProfilerInt matches integer literals
	ProfilerInt ProfilerType = "int"
	// ProfilerDecimal matches floating point literals
	ProfilerDecimal ProfilerType = "decimal"
	// ProfilerString matches any non-null string
	ProfilerString ProfilerType = "string"
	// ProfilerBool matches boolean values and literals
	ProfilerBool ProfilerType = "bool"
	// ProfilerDate matches calendar dates
	ProfilerDate ProfilerType = "date"
	// ProfilerEmail matches email addresses
	ProfilerEmail ProfilerType = "email"
	// ProfilerURL matches URLs
	ProfilerURL ProfilerType = "url"
	// ProfilerIP matches IPv4/IPv6 addresses
	ProfilerIP ProfilerType = "ip"
	// ProfilerZipCode matches 5 or 9 digit postal codes
	ProfilerZipCode ProfilerType = "zip_code"
	// ProfilerCreditCard matches credit card numbers
	ProfilerCreditCard ProfilerType = "credit_card_number"
	// ProfilerGender matches gender labels
	ProfilerGender ProfilerType = "gender"
	// ProfilerMissing matches only the null marker
	ProfilerMissing ProfilerType = "missing"
)
