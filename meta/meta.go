// Package meta implements the copy-on-transform lineage record attached to
// every logical table. A Record maps output column names to the ordered
// sequence of actions which produced their current values. Records are never
// mutated in place: With returns a fresh Record, so lineage is table-scoped
// and copy-forwarded across transformations.
package meta

// ActionKind is a tag identifying which transformation produced a column's
// current values. Kinds are purely descriptive and never affect computation.
type ActionKind string

const (
	// ActionImpute indicates missing values were filled
	ActionImpute ActionKind = "impute"
	// ActionCast indicates values were cast to a target data type
	ActionCast ActionKind = "cast"
	// ActionStringToIndex indicates string labels were encoded to indices
	ActionStringToIndex ActionKind = "string_to_index"
	// ActionIndexToString indicates label indices were decoded to strings
	ActionIndexToString ActionKind = "index_to_string"
	// ActionNest indicates multiple columns were merged into one
	ActionNest ActionKind = "nest"
	// ActionUnnest indicates one column was split into several
	ActionUnnest ActionKind = "unnest"
	// ActionSet indicates a column was set to a constant or computed value
	ActionSet ActionKind = "set"
	// ActionDateFormat indicates a date column was reformatted
	ActionDateFormat ActionKind = "date_format"
	// ActionRename indicates a column was renamed
	ActionRename ActionKind = "rename"
	// ActionReplaceRegex indicates values were rewritten by a regex
	ActionReplaceRegex ActionKind = "replace_regex"
	// ActionRemoveAccents indicates accented characters were normalized
	ActionRemoveAccents ActionKind = "remove_accents"
	// ActionReverse indicates string values were reversed
	ActionReverse ActionKind = "reverse"
	// ActionApply indicates a user-supplied function was applied
	ActionApply ActionKind = "apply"
)

// Action is one entry in a column's transformation lineage. Params describe
// the transform (e.g. the target dtype for a cast) but never contain the
// transformed data itself.
type Action struct {
	Kind   ActionKind
	Params map[string]interface{}
}

// Record is a mapping from output column name to that column's ordered
// transformation lineage.
type Record map[string][]Action

// CreateRecord returns an empty lineage Record
func CreateRecord() Record {
	return make(Record)
}

// Clone returns a copy of this Record. Action slices are copied; Params maps
// are shared, as Actions are never modified after creation.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for col, actions := range r {
		copied := make([]Action, len(actions))
		copy(copied, actions)
		clone[col] = copied
	}
	return clone
}

// Actions returns the lineage recorded against one output column, oldest
// action first
func (r Record) Actions(colName string) []Action {
	return r[colName]
}

// With returns a new Record in which the given action has been appended to
// the lineage of every named output column. The receiver is unmodified.
func (r Record) With(kind ActionKind, params map[string]interface{}, outputCols ...string) Record {
	next := r.Clone()
	for _, col := range outputCols {
		next[col] = append(next[col], Action{Kind: kind, Params: params})
	}
	return next
}

// Rename returns a new Record in which the lineage of oldName is carried
// over under newName, with a rename action appended
func (r Record) Rename(oldName string, newName string) Record {
	next := r.Clone()
	if actions, ok := next[oldName]; ok {
		delete(next, oldName)
		next[newName] = actions
	}
	next[newName] = append(next[newName], Action{
		Kind:   ActionRename,
		Params: map[string]interface{}{"from": oldName},
	})
	return next
}
