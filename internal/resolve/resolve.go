// Package resolve classifies a user-typed token sequence against the unified
// command catalog: an exact leaf command, a partial prefix with descendant
// groups/subgroups/commands, or no match.
package resolve

import (
	"strings"

	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/catalog"
)

// Match is one catalog command annotated with its inferred position.
type Match struct {
	Group    string
	Subgroup string
	Meta     catalog.CommandMeta
}

// Resolution is the classification of one token sequence. When Exact is set
// the tokens name a single leaf command; otherwise the bucket slices hold the
// distinct names visible at the requested depth.
type Resolution struct {
	Exact     *Match
	Matches   []Match
	Subgroups []string
	Groups    []string
	Commands  []string
}

// Resolve walks the catalog for the given tokens. The first token selects
// the module; the full token sequence, slash-joined, is matched against the
// route paths of the module's commands.
func Resolve(cat *catalog.Catalog, tokens []string) (*Resolution, error) {
	if len(tokens) == 0 {
		return nil, apperr.New(apperr.BadRequest, "no command requested")
	}

	module := tokens[0]
	mod, ok := cat.Modules[module]
	if !ok {
		return nil, apperr.New(apperr.BadRequest, "module not found: %s", module)
	}

	want := "/" + strings.Join(tokens, "/")

	res := &Resolution{}
	seenSubgroup := make(map[string]bool)
	seenGroup := make(map[string]bool)
	seenCommand := make(map[string]bool)

	for _, set := range mod.Sets {
		for _, meta := range set {
			if !strings.HasPrefix(meta.Route.Path, want) {
				continue
			}

			group, subgroup := meta.Placement()
			match := Match{Group: group, Subgroup: subgroup, Meta: meta}
			res.Matches = append(res.Matches, match)

			if meta.Route.Path == want {
				res.Exact = &match
			}

			if subgroup != "" && !seenSubgroup[subgroup] {
				seenSubgroup[subgroup] = true
				res.Subgroups = append(res.Subgroups, subgroup)
			}
			if subgroup == "" && meta.Name != "" && !seenCommand[meta.Name] {
				seenCommand[meta.Name] = true
				res.Commands = append(res.Commands, meta.Name)
			}
			if group != "" && !seenGroup[group] {
				seenGroup[group] = true
				res.Groups = append(res.Groups, group)
			}
		}
	}

	if res.Exact != nil {
		return res, nil
	}

	// A name that appears as both a subgroup and a group is listed only as a
	// subgroup, so the same token is never offered at two levels.
	filtered := res.Groups[:0]
	for _, g := range res.Groups {
		if !seenSubgroup[g] {
			filtered = append(filtered, g)
		}
	}
	res.Groups = filtered

	if len(res.Matches) == 0 && len(res.Subgroups) == 0 &&
		len(res.Groups) == 0 && len(res.Commands) == 0 {
		return nil, apperr.New(apperr.BadRequest, "invalid group or command requested")
	}

	return res, nil
}
