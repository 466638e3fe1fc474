// Package params validates a flat argument list against a declared parameter
// schema for commands handled entirely client-side.
package params

import (
	"strings"

	"github.com/modular-tools/cli/internal/apperr"
)

// Spec declares one flag: its name (with leading dashes), whether it is
// required, and whether it is boolean (presence-only, no value consumed).
type Spec struct {
	Flag     string
	Required bool
	Bool     bool
}

// Schema is an ordered parameter declaration list.
type Schema []Spec

// Value is the resolved value of one declared flag. For boolean flags Bool
// holds the result; for string flags Str does. Set is false when the flag
// was absent from the token list.
type Value struct {
	Flag string
	Str  string
	Bool bool
	Set  bool
}

// Validate resolves every declared flag against the raw token list and
// returns the values in schema declaration order. A boolean flag is true iff
// its token is present; a string flag takes the token immediately following
// its occurrence. Missing required flags are aggregated into a single error
// naming all of them.
func (s Schema) Validate(tokens []string) ([]Value, error) {
	values := make([]Value, 0, len(s))
	var missing []string

	for _, spec := range s {
		v := Value{Flag: spec.Flag}
		idx := indexOf(tokens, spec.Flag)

		switch {
		case spec.Bool:
			v.Bool = idx >= 0
			v.Set = idx >= 0
		case idx >= 0 && idx+1 < len(tokens):
			v.Str = tokens[idx+1]
			v.Set = true
		}

		if !spec.Bool && !v.Set && spec.Required {
			missing = append(missing, strings.TrimLeft(spec.Flag, "-"))
		}
		values = append(values, v)
	}

	if len(missing) > 0 {
		return nil, apperr.New(apperr.BadRequest,
			"The following parameters are missing: %s", strings.Join(missing, ", "))
	}
	return values, nil
}

// NormalizeAliases rewrites short alias flags to their long form so that
// validation and dispatch see one spelling. The alias map is keyed by the
// short spelling (with leading dash); an empty map returns the tokens
// unchanged.
func NormalizeAliases(aliases map[string]string, tokens []string) []string {
	if len(aliases) == 0 {
		return tokens
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if long, ok := aliases[tok]; ok {
			out[i] = long
		} else {
			out[i] = tok
		}
	}
	return out
}

func indexOf(tokens []string, flag string) int {
	for i, tok := range tokens {
		if tok == flag {
			return i
		}
	}
	return -1
}
