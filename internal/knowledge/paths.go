package knowledge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueAtPath resolves a dot-separated path ("careers.0.projects") inside a
// raw knowledge-base payload and returns the value there. The reserved
// RootPath returns the whole record. Array elements are addressed by index.
func ValueAtPath(raw json.RawMessage, path string) (json.RawMessage, error) {
	if path == RootPath || path == "" {
		return raw, nil
	}

	current := raw
	for _, segment := range strings.Split(path, ".") {
		if len(current) == 0 {
			return nil, fmt.Errorf("path %q not found", path)
		}

		if index, err := strconv.Atoi(segment); err == nil {
			var arr []json.RawMessage
			if err := json.Unmarshal(current, &arr); err != nil {
				return nil, fmt.Errorf("path %q: %q is an index but the value is not an array", path, segment)
			}
			if index < 0 || index >= len(arr) {
				return nil, fmt.Errorf("path %q: index %d out of range", path, index)
			}
			current = arr[index]
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return nil, fmt.Errorf("path %q: cannot descend into %q", path, segment)
		}
		next, ok := obj[segment]
		if !ok {
			return nil, fmt.Errorf("path %q: key %q not found", path, segment)
		}
		current = next
	}
	return current, nil
}
