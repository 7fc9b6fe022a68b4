package main

import (
	"fmt"
	"strconv"
	"strings"
)

// flags holds parsed --name value options.
type flags map[string]string

func (f flags) has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f flags) int(name string, def int) (int, error) {
	v, ok := f[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("--%s must be a number, got %q", name, v)
	}
	return n, nil
}

// parseArgs splits args into options and positional arguments.
// Supports both "--name value" and "--name=value" formats; switches take no value.
func parseArgs(args []string, options []string, switches ...string) (flags, []string, error) {
	isOption := make(map[string]bool, len(options))
	for _, o := range options {
		isOption[o] = true
	}
	isSwitch := make(map[string]bool, len(switches))
	for _, s := range switches {
		isSwitch[s] = true
	}

	parsed := flags{}
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch {
		case isSwitch[name]:
			if hasValue {
				return nil, nil, fmt.Errorf("--%s takes no value", name)
			}
			parsed[name] = "true"
		case isOption[name]:
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("--%s requires a value", name)
				}
				value = args[i+1]
				i++
			}
			parsed[name] = value
		default:
			return nil, nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return parsed, rest, nil
}

// subcommand pops the first argument, defaulting to def.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 {
		return def, nil
	}
	return args[0], args[1:]
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
