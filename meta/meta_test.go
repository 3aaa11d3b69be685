package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithAppendsWithoutMutatingOriginal(t *testing.T) {
	rec := CreateRecord()
	next := rec.With(ActionCast, map[string]interface{}{"dtype": "int"}, "a", "b")
	require.Empty(t, rec.Actions("a"))
	require.Len(t, next.Actions("a"), 1)
	require.Len(t, next.Actions("b"), 1)
	require.Equal(t, ActionCast, next.Actions("a")[0].Kind)

	// appending again extends lineage in order
	further := next.With(ActionImpute, nil, "a")
	require.Len(t, next.Actions("a"), 1)
	require.Len(t, further.Actions("a"), 2)
	require.Equal(t, ActionImpute, further.Actions("a")[1].Kind)
}

func TestRenameCarriesLineageToNewName(t *testing.T) {
	rec := CreateRecord().With(ActionCast, nil, "old")
	next := rec.Rename("old", "new")
	require.Len(t, rec.Actions("old"), 1)
	require.Empty(t, next.Actions("old"))
	actions := next.Actions("new")
	require.Len(t, actions, 2)
	require.Equal(t, ActionCast, actions[0].Kind)
	require.Equal(t, ActionRename, actions[1].Kind)
	require.Equal(t, "old", actions[1].Params["from"])
}

func TestRenameUntrackedColumn(t *testing.T) {
	rec := CreateRecord()
	next := rec.Rename("a", "b")
	actions := next.Actions("b")
	require.Len(t, actions, 1)
	require.Equal(t, ActionRename, actions[0].Kind)
}

func TestCloneIsDeep(t *testing.T) {
	rec := CreateRecord().With(ActionSet, nil, "a")
	clone := rec.Clone()
	clone["a"] = append(clone["a"], Action{Kind: ActionReverse})
	require.Len(t, rec.Actions("a"), 1)
	require.Len(t, clone.Actions("a"), 2)
}
