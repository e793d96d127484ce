package config

import "strconv"

// coerce converts raw to kind. Values that already have the requested type are
// accepted as they are, strings are parsed, lists must hold only strings.
func coerce(raw any, kind Kind, path string) (any, error) {
	switch kind {
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case KindInt:
		switch v := raw.(type) {
		case int:
			return v, nil
		case string:
			if i, err := strconv.Atoi(v); err == nil {
				return i, nil
			}
		}
	case KindLong:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case string:
			if i, err := strconv.ParseInt(v, 10, 64); err == nil {
				return i, nil
			}
		}
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			// only the exact literals, "True" or "yes" are rejected
			switch v {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}
	case KindDouble:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		}
	case KindList:
		if list, ok := stringList(raw); ok {
			return list, nil
		}
	}

	return nil, &TypeError{Value: raw, Path: path, TypeName: kind.String()}
}

func stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, s)
		}
		return list, true
	default:
		return nil, false
	}
}
