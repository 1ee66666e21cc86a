package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
var ErrMissingEnv = errors.New("config: missing environment variable")

var envRef = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} in a config file with the variable's value.
// Every referenced variable must be set. "$$" is a literal "$"; a bare $VAR
// is left alone.
func expandEnv(content []byte) ([]byte, error) {
	missing := make(map[string]struct{})
	out := envRef.ReplaceAllFunc(content, func(ref []byte) []byte {
		if string(ref) == "$$" {
			return []byte("$")
		}
		key := string(ref[2 : len(ref)-1])
		value, ok := os.LookupEnv(key)
		if !ok {
			missing[key] = struct{}{}
		}
		return []byte(value)
	})

	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(keys, ", "))
	}
	return out, nil
}
