package export

import (
	"fmt"
	"sort"
)

// Flatten collapses a nested result document into parallel header/value
// slices. Object keys become dotted paths, array elements bracketed paths
// (series[0].month), scalars land at the leaves. Keys are sorted at every
// level, so the same document always flattens to the same columns.
//
// One document becomes exactly one row: a multi-element series turns into one
// column per element, not one row per element.
func Flatten(data map[string]any) ([]string, []string) {
	headers := make([]string, 0, len(data))
	values := make([]string, 0, len(data))
	flattenMap(data, "", &headers, &values)
	return headers, values
}

func flattenMap(data map[string]any, prefix string, headers, values *[]string) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		flattenValue(data[key], path, headers, values)
	}
}

func flattenValue(value any, path string, headers, values *[]string) {
	switch v := value.(type) {
	case map[string]any:
		flattenMap(v, path, headers, values)
	case []any:
		for i, element := range v {
			flattenValue(element, fmt.Sprintf("%s[%d]", path, i), headers, values)
		}
	default:
		*headers = append(*headers, path)
		*values = append(*values, formatScalar(v))
	}
}

func formatScalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
