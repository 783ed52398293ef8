package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

const rootTree = `{"id":"root","children":[
	{"id":1,"name":"Sales","children":[{"id":11,"name":"Orders","children":[]},{"id":12,"name":"VM","children":[]}]},
	{"id":2,"name":"Cloud","children":[{"id":21,"children":[]}]},
	{"id":3,"name":"Settings"}
]}`

func TestApplyPrunesHiddenIDs(t *testing.T) {
	f := NewFilter("Nubi2go", []int{2, 12})
	in := decode(t, rootTree)

	out := f.Apply("Other Co", in).(map[string]any)
	children := out["children"].([]any)
	require.Len(t, children, 2)
	sales := children[0].(map[string]any)
	require.Equal(t, "Sales", sales["name"])
	require.Len(t, sales["children"].([]any), 1)
	require.Equal(t, "Settings", children[1].(map[string]any)["name"])
	require.Empty(t, children[1].(map[string]any)["children"])

	original := in.(map[string]any)["children"].([]any)
	require.Len(t, original, 3, "input is not modified")
}

func TestApplyKeepsTreeForTargetCompany(t *testing.T) {
	f := NewFilter("Nubi2go", []int{2})
	in := decode(t, rootTree)
	require.Equal(t, in, f.Apply("Nubi2go", in))
}

func TestApplyOnList(t *testing.T) {
	f := NewFilter("Nubi2go", []int{2})
	out := f.Apply("Other", decode(t, `[{"id":1},{"id":2},{"id":3}]`)).([]any)
	require.Len(t, out, 2)
}

func TestApplyLeavesUnknownShapes(t *testing.T) {
	f := NewFilter("Nubi2go", []int{1})
	in := decode(t, `{"id":1,"name":"no children"}`)
	require.Equal(t, in, f.Apply("Other", in))
	require.Equal(t, "x", f.Apply("Other", "x"))
}

func TestNodeID(t *testing.T) {
	for _, v := range []any{float64(7), 7, int64(7), json.Number("7"), " 7 "} {
		id, ok := nodeID(v)
		require.True(t, ok)
		require.Equal(t, int64(7), id)
	}
	_, ok := nodeID(7.5)
	require.False(t, ok)
}

func TestFilterHandler(t *testing.T) {
	h := &Handler{Filter: NewFilter("Nubi2go", []int{2})}
	rec := httptest.NewRecorder()
	h.FilterMenus(rec, httptest.NewRequest(http.MethodPost, "/menus/filter",
		strings.NewReader(`{"company":"Other","menus":[{"id":1},{"id":2}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[{"id":1,"children":[]}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.FilterMenus(rec, httptest.NewRequest(http.MethodPost, "/menus/filter", strings.NewReader(`{"menus":[]}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
