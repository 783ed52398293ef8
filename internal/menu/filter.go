// Package menu hides cloud-module menu entries from companies other than the
// one the cloud offering belongs to.
package menu

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Filter prunes menu trees by node id.
type Filter struct {
	Company string
	hidden  map[int64]struct{}
}

// NewFilter builds a filter that shows every menu to company and hides ids
// from everyone else.
func NewFilter(company string, ids []int) Filter {
	hidden := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		hidden[int64(id)] = struct{}{}
	}
	return Filter{Company: company, hidden: hidden}
}

// Apply returns tree unchanged for the configured company. For any other
// company it removes, at any depth, every node whose id is hidden. tree is
// either a root object with "children" or a list of nodes; the root object
// itself is never removed. Input values are not modified.
func (f Filter) Apply(company string, tree any) any {
	if company == f.Company || len(f.hidden) == 0 {
		return tree
	}
	switch t := tree.(type) {
	case map[string]any:
		children, ok := t["children"]
		if !ok {
			return tree
		}
		root := cloneNode(t)
		root["children"] = f.pruneList(children)
		return root
	case []any:
		return f.pruneList(t)
	}
	return tree
}

func (f Filter) pruneList(v any) []any {
	list, _ := v.([]any)
	kept := make([]any, 0, len(list))
	for _, child := range list {
		if node, ok := f.prune(child); ok {
			kept = append(kept, node)
		}
	}
	return kept
}

func (f Filter) prune(v any) (any, bool) {
	node, ok := v.(map[string]any)
	if !ok {
		return v, true
	}
	if id, ok := nodeID(node["id"]); ok {
		if _, hide := f.hidden[id]; hide {
			return nil, false
		}
	}
	out := cloneNode(node)
	out["children"] = f.pruneList(node["children"])
	return out, true
}

func cloneNode(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		out[k] = v
	}
	return out
}

func nodeID(v any) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id != float64(int64(id)) {
			return 0, false
		}
		return int64(id), true
	case int:
		return int64(id), true
	case int64:
		return id, true
	case json.Number:
		n, err := id.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		return n, err == nil
	}
	return 0, false
}
