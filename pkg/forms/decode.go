package forms

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// rowSet collects list rows by index while decoding.
type rowSet map[int]any

// DecodeParameters turns flat request parameters into nested values:
// "team.name" becomes a nested map and "members-2.email" the second row of
// the "members" list. Rows are ordered by index; gaps are dropped.
// Parameters with several values decode to []string.
func DecodeParameters(params url.Values) (map[string]any, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := make(map[string]any)
	for _, key := range keys {
		values := params[key]
		var value any
		switch len(values) {
		case 0:
			value = ""
		case 1:
			value = values[0]
		default:
			value = append([]string(nil), values...)
		}
		if err := assign(root, strings.Split(key, "."), value); err != nil {
			return nil, fmt.Errorf("forms: decode %q: %w", key, err)
		}
	}
	return finish(root).(map[string]any), nil
}

func assign(node map[string]any, segments []string, value any) error {
	segment := segments[0]
	last := len(segments) == 1
	name, index, isRow := splitRow(segment)
	if name == "" {
		return fmt.Errorf("empty segment")
	}

	if !isRow {
		if last {
			if _, exists := node[name]; exists {
				return fmt.Errorf("conflicting value for %q", name)
			}
			node[name] = value
			return nil
		}
		child, err := mapChild(node, name)
		if err != nil {
			return err
		}
		return assign(child, segments[1:], value)
	}

	rows, ok := node[name].(rowSet)
	if !ok {
		if _, exists := node[name]; exists {
			return fmt.Errorf("conflicting value for %q", name)
		}
		rows = make(rowSet)
		node[name] = rows
	}
	if last {
		rows[index] = value
		return nil
	}
	row, ok := rows[index].(map[string]any)
	if !ok {
		if _, exists := rows[index]; exists {
			return fmt.Errorf("conflicting value for %q", segment)
		}
		row = make(map[string]any)
		rows[index] = row
	}
	return assign(row, segments[1:], value)
}

func mapChild(node map[string]any, name string) (map[string]any, error) {
	if existing, ok := node[name]; ok {
		child, ok := existing.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("conflicting value for %q", name)
		}
		return child, nil
	}
	child := make(map[string]any)
	node[name] = child
	return child, nil
}

// splitRow splits "members-2" into ("members", 2, true).
func splitRow(segment string) (string, int, bool) {
	i := strings.LastIndex(segment, "-")
	if i <= 0 || i == len(segment)-1 {
		return segment, 0, false
	}
	index, err := strconv.Atoi(segment[i+1:])
	if err != nil || index < 0 {
		return segment, 0, false
	}
	return segment[:i], index, true
}

func finish(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = finish(item)
		}
		return v
	case rowSet:
		indexes := make([]int, 0, len(v))
		for index := range v {
			indexes = append(indexes, index)
		}
		sort.Ints(indexes)
		out := make([]any, 0, len(indexes))
		for _, index := range indexes {
			out = append(out, finish(v[index]))
		}
		return out
	}
	return value
}
