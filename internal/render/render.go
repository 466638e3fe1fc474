// Package render turns resolution results into the plain-text help output.
// The templates here are a stable contract consumed by terminal users and
// scripts; do not reformat them.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/resolve"
)

// HelpStub is the shared description line of every listing.
const HelpStub = "Here are the commands supported by the current version of the tool. " +
	"IMPORTANT: The scope of commands you can execute depends on your user permissions."

const (
	generalHelpTemplate = "Description: %s\n" +
		"Usage: %s [module] group [subgroup] command [parameters]\n" +
		"Options:\n" +
		"  --help     Show this message and exit.\n"

	commandHelpTemplate = "Description: %s\n" +
		"Usage: %s %s [parameters]\n" +
		"Parameters:\n%s\n"

	emptyCatalogTemplate = "Description: %s\nNo commands available\n"
)

// Renderer renders help text for one entry point name.
type Renderer struct {
	EntryPoint string
}

// Root renders the catalog-wide listing: every top-level entry grouped by
// kind, with bucket names sorted. An empty catalog yields the fixed
// no-commands notice.
func (r Renderer) Root(cat *catalog.Catalog) string {
	if cat.Empty() {
		return fmt.Sprintf(emptyCatalogTemplate, HelpStub)
	}

	buckets := make(map[string][]string)
	for name, mod := range cat.Modules {
		kind := mod.Type
		if kind == "" {
			kind = "module"
		}
		buckets[kind] = append(buckets[kind], name)
	}
	for name, meta := range cat.Roots {
		buckets[rootKind(meta.Type)] = append(buckets[rootKind(meta.Type)], name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, generalHelpTemplate, HelpStub, r.EntryPoint)
	writeBuckets(&b, buckets)
	return b.String()
}

// Listing renders the grouped listing for a partial path.
func (r Renderer) Listing(res *resolve.Resolution) string {
	buckets := make(map[string][]string)
	if len(res.Subgroups) > 0 {
		buckets["subgroup"] = append([]string(nil), res.Subgroups...)
	}
	if len(res.Groups) > 0 {
		buckets["group"] = append([]string(nil), res.Groups...)
	}
	if len(res.Commands) > 0 {
		buckets["command"] = append([]string(nil), res.Commands...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, generalHelpTemplate, HelpStub, r.EntryPoint)
	writeBuckets(&b, buckets)
	return b.String()
}

// Command renders the full usage of one command: description, the usage line
// rebuilt from the originally-typed tokens, and the parameter table.
func (r Renderer) Command(meta catalog.CommandMeta, typed []string) string {
	return fmt.Sprintf(commandHelpTemplate,
		meta.Description,
		r.EntryPoint,
		strings.Join(typed, " "),
		parameterTable(meta.Parameters))
}

// parameterTable lays out one tab-separated row per parameter, in declaration
// order: long flag, short alias, required marker, description.
func parameterTable(params []catalog.Parameter) string {
	if len(params) == 0 {
		return "No parameters declared"
	}

	rows := make([]string, 0, len(params))
	for _, p := range params {
		alias := ""
		if p.Alias != "" {
			alias = "-" + p.Alias
		}
		marker := ""
		if p.Required {
			marker = "*"
		}
		rows = append(rows, fmt.Sprintf("\t--%s\t%s\t%s\t%s", p.Name, alias, marker, p.Description))
	}
	return strings.Join(rows, "\n")
}

// rootKind folds the "root command" kind into plain commands for listings.
func rootKind(typ string) string {
	if typ == "" || typ == "root command" {
		return "command"
	}
	return typ
}

func writeBuckets(b *strings.Builder, buckets map[string][]string) {
	kinds := make([]string, 0, len(buckets))
	for kind := range buckets {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		names := buckets[kind]
		sort.Strings(names)
		fmt.Fprintf(b, "Available %ss:\n\t%s\n", kind, strings.Join(names, "\n\t"))
	}
}
