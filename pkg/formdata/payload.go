package formdata

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var rowSegment = regexp.MustCompile(`^(.+)-(\d+)$`)

// ApplyErrorPayload attaches server side messages to the matching nodes of
// data. Keys may use dotted ("items.0.id"), JSON pointer ("/items/0/id"),
// bracket ("items[0].id") or rendered ("items-1.id", 1-based) paths. Leading
// wrapper segments such as "body" or "data" are ignored. Messages whose path
// does not resolve are returned; when data is a *FormData they are also
// stored as form level errors.
func ApplyErrorPayload(data Data, payload map[string][]string) []string {
	var unmatched []string
	for _, rawPath := range sortedPayloadKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		target := resolvePath(data, parsePathSegments(rawPath))
		if target == nil || target == data {
			unmatched = append(unmatched, messages...)
			continue
		}
		appendErrors(target, messages)
	}

	unmatched = normalizeMessages(unmatched)
	if form, ok := data.(*FormData); ok && len(unmatched) > 0 {
		errs := form.FormErrors()
		for _, msg := range unmatched {
			errs = append(errs, errors.New(msg))
		}
		form.SetFormErrors(errs...)
	}
	return unmatched
}

func resolvePath(data Data, segments []string) Data {
	if len(segments) == 0 {
		return nil
	}
	for _, candidate := range [][]string{segments, dropWrapperSegments(segments)} {
		if target := walk(data, candidate); target != nil {
			return target
		}
	}
	return nil
}

func walk(data Data, segments []string) Data {
	current := data
	for _, segment := range segments {
		switch node := current.(type) {
		case *FormData:
			if child, ok := node.children[segment]; ok {
				current = child
				continue
			}
			// "items-2" addresses the second row of the list field "items".
			match := rowSegment.FindStringSubmatch(segment)
			if match == nil {
				return nil
			}
			list, ok := node.children[match[1]].(*RepeatingFieldData)
			if !ok {
				return nil
			}
			row, _ := strconv.Atoi(match[2])
			item, err := list.Item(row - 1)
			if err != nil {
				return nil
			}
			current = item
		case *RepeatingFieldData:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return nil
			}
			item, err := node.Item(index)
			if err != nil {
				return nil
			}
			current = item
		default:
			return nil
		}
	}
	return current
}

func appendErrors(target Data, messages []string) {
	errs := make([]error, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, errors.New(msg))
	}
	switch node := target.(type) {
	case *FieldData:
		node.errors = append(node.errors, errs...)
	case *FormData:
		node.formErrors = append(node.formErrors, errs...)
	case *RepeatingFieldData:
		node.errors = append(node.errors, errs...)
	}
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for _, prefix := range []string{"#/", "$/", "$."} {
		clean = strings.TrimPrefix(clean, prefix)
	}
	clean = strings.TrimLeft(clean, "#/.$")

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 1 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedPayloadKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
