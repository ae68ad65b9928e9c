// Package params parses workflow parameter override files.
//
// An override file assigns values to options of individual workflow steps,
// one assignment per line:
//
//	pick_otus:similarity 0.97
//	align_seqs:template_fp /data/core_set_aligned.fasta
//
// Lines starting with '#' and blank lines are ignored. A value may be empty,
// which marks the option as present but unset; the command builder omits such
// options so the wrapped tool falls back to its own default.
package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Params maps step name to option name to the override value.
type Params map[string]map[string]string

// ParseError describes an override-file line that does not follow the
// step:option value shape.
type ParseError struct {
	Line int
	Raw  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q does not match step:option value", e.Line, e.Raw)
}

// Parse reads an override file. When the same step:option pair appears more
// than once, the last assignment wins.
func Parse(r io.Reader) (Params, error) {
	p := Params{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		step, option, found := strings.Cut(key, ":")
		if !found || step == "" || option == "" {
			return nil, &ParseError{Line: lineNo, Raw: scanner.Text()}
		}

		if p[step] == nil {
			p[step] = map[string]string{}
		}
		p[step][option] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read parameter file")
	}

	return p, nil
}

// ParseFile opens and parses an override file.
func ParseFile(path string) (Params, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open parameter file %s", path)
	}
	defer file.Close()

	p, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse parameter file %s", path)
	}

	return p, nil
}

// Get returns the override for step:option, or def when no override exists.
func (p Params) Get(step, option, def string) string {
	opts, ok := p[step]
	if !ok {
		return def
	}
	value, ok := opts[option]
	if !ok {
		return def
	}

	return value
}

// Options returns a copy of all overrides recorded for a step. Unknown steps
// yield an empty map; overrides are forwarded verbatim, validation is the
// wrapped tool's concern.
func (p Params) Options(step string) map[string]string {
	opts := make(map[string]string, len(p[step]))
	for option, value := range p[step] {
		opts[option] = value
	}

	return opts
}
