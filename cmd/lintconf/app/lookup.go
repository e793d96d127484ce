package app

import (
	"errors"
	"fmt"

	"github.com/sonemaro/lintconf/pkg/config"
)

// KindAuto resolves a value as whichever kind its raw value has.
const KindAuto = "auto"

type lookupFunc func(config.Node, string) (any, bool, error)

func lookupAs[T config.Value](n config.Node, key string) (any, bool, error) {
	v, ok, err := config.Lookup[T](n, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

var lookups = map[string]lookupFunc{
	"string": lookupAs[string],
	"bool":   lookupAs[bool],
	"int":    lookupAs[int],
	"long":   lookupAs[int64],
	"double": lookupAs[float64],
	"list":   lookupAs[[]string],
}

// autoOrder tries string first so a quoted number stays a string.
var autoOrder = []string{"string", "bool", "int", "long", "double", "list"}

// ValueKinds returns the kind names accepted by Get.
func ValueKinds() []string {
	return append([]string{KindAuto}, autoOrder...)
}

// lookup resolves key on node as kind and returns the value, the kind it was
// resolved as and whether it was set.
func lookup(node config.Node, key, kind string) (any, string, bool, error) {
	if kind != KindAuto {
		fn, ok := lookups[kind]
		if !ok {
			return nil, "", false, fmt.Errorf("unknown value type %q, expected one of %v", kind, ValueKinds())
		}
		v, set, err := fn(node, key)
		return v, kind, set, err
	}

	var lastErr error
	for _, k := range autoOrder {
		v, set, err := lookups[k](node, key)
		if err != nil {
			var typeErr *config.TypeError
			if !errors.As(err, &typeErr) {
				return nil, "", false, err
			}
			lastErr = err
			continue
		}
		if !set {
			return nil, KindAuto, false, nil
		}
		return v, k, true, nil
	}
	return nil, "", false, lastErr
}
