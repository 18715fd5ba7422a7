package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ParseGenericOptions strips the engine's own options from a raw argument
// stream, populating cfg as a side effect, and returns the remaining tokens
// in their original order.
//
// Recognized options:
//
//	-conf <path>      load an HCL resource file (or a directory of them)
//	-D key=value      set a single configuration override
//	-Dkey=value       same, attached form
//
// Everything else passes through untouched; validation of the remainder is a
// downstream concern.
func ParseGenericOptions(rawArgs []string, cfg *Config) ([]string, error) {
	rest := make([]string, 0, len(rawArgs))

	for i := 0; i < len(rawArgs); i++ {
		tok := rawArgs[i]
		switch {
		case tok == "-conf":
			i++
			if i >= len(rawArgs) {
				return nil, errors.New("-conf requires a file or directory path")
			}
			if err := cfg.LoadPath(rawArgs[i]); err != nil {
				return nil, fmt.Errorf("loading engine config %s: %w", rawArgs[i], err)
			}
		case tok == "-D":
			i++
			if i >= len(rawArgs) {
				return nil, errors.New("-D requires a key=value pair")
			}
			if err := setOverride(cfg, rawArgs[i]); err != nil {
				return nil, err
			}
		case strings.HasPrefix(tok, "-D") && len(tok) > 2:
			if err := setOverride(cfg, tok[2:]); err != nil {
				return nil, err
			}
		default:
			rest = append(rest, tok)
		}
	}

	return rest, nil
}

func setOverride(cfg *Config, kv string) error {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return fmt.Errorf("malformed -D option %q: expected key=value", kv)
	}
	cfg.Set(key, value)
	return nil
}
