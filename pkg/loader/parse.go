package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/sonemaro/lintconf/pkg/config"
)

// Parse decodes data in the given format. source names the document in
// errors. A blank document is an empty tree; a document whose top level is
// not a map is a *config.StructureError.
func Parse(format Format, data []byte, source string) (config.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return config.Tree{}, nil
	}

	var (
		doc any
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&doc)
	case FormatTOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		doc = m
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, oops.
			In("loader").
			With("source", source).
			With("format", string(format)).
			Wrapf(err, "failed to parse configuration")
	}

	if doc == nil {
		return config.Tree{}, nil
	}

	normalized := normalize(doc)
	tree, ok := normalized.(map[string]any)
	if !ok {
		return nil, &config.StructureError{
			Source: source,
			Reason: fmt.Sprintf("expected a map at the top level, got %T", doc),
		}
	}
	return config.Tree(tree), nil
}

// normalize converts decoder specific types into the value set the config
// package understands.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalize(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = normalize(item)
		}
		return list
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return normalizeInt(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case int64:
		return normalizeInt(val)
	case uint64:
		if val <= math.MaxInt64 {
			return normalizeInt(int64(val))
		}
		return fmt.Sprint(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

func normalizeInt(i int64) any {
	if i >= math.MinInt && i <= math.MaxInt {
		return int(i)
	}
	return i
}
