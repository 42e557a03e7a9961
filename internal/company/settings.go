package company

import "strings"

// Settings are stored as an arbitrarily nested JSON object. Keys address
// values by dot path, e.g. "payroll.cycle".

func getSetting(settings map[string]any, keyPath string) (any, bool) {
	parts := strings.Split(keyPath, ".")
	cur := settings

	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}

	return nil, false
}

// setSetting writes value at keyPath, creating intermediate objects and
// overwriting non-object intermediates. Returns the (possibly new) root map.
func setSetting(settings map[string]any, keyPath string, value any) map[string]any {
	if settings == nil {
		settings = map[string]any{}
	}

	parts := strings.Split(keyPath, ".")
	cur := settings

	for i, part := range parts {
		if i == len(parts)-1 {
			cur[part] = value
			break
		}
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}

	return settings
}
