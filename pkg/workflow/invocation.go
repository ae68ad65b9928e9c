package workflow

import (
	"sort"
	"strings"
)

// Invocation is one fully resolved external command. All arguments are
// literal by the time an Invocation exists; nothing is interpolated at
// execution time.
type Invocation struct {
	Step      StepName
	Program   string
	Args      []string
	OutputDir string
	// Input is the upstream file this step declares as its required input.
	Input string
	// Output is the file the next step in the chain consumes.
	Output string
}

// String renders the invocation the way a user would type it.
func (inv Invocation) String() string {
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

// optionArgs renders step overrides as "--option value" pairs in sorted key
// order so identical inputs always produce identical argument lists. Options
// with empty values are omitted, leaving the tool's own default in effect.
func optionArgs(opts map[string]string) []string {
	keys := make([]string, 0, len(opts))
	for key, value := range opts {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		args = append(args, "--"+key, opts[key])
	}

	return args
}
