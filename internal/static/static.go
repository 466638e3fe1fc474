// Package static implements the commands handled entirely client-side,
// without contacting the gateway's command routes. Dispatch is a table from
// command kind to behavior; each entry declares its flags once and derives
// both its help text and its validation schema from them.
package static

import (
	"sort"
	"strings"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/completions"
	"github.com/modular-tools/cli/internal/domain"
	"github.com/modular-tools/cli/internal/params"
	"github.com/modular-tools/cli/internal/render"
)

// Kind enumerates the static commands.
type Kind int

const (
	KindSetup Kind = iota
	KindLogin
	KindCleanup
	KindVersion
	KindEnableAutocomplete
	KindDisableAutocomplete
)

// Flag declares one flag of a static command.
type Flag struct {
	Name        string
	Alias       string
	Required    bool
	Bool        bool
	Description string
}

// Result is the outcome of a static command.
type Result struct {
	Message  string
	Warnings []string
}

// Dependencies carries the collaborators handlers run against.
type Dependencies struct {
	App         *domain.Application
	Completions *completions.Installer
	EntryPoint  string
	Version     string
	Env         func(string) string
}

type runFunc func(d Dependencies, vals []params.Value) (Result, error)

// Command is one static command: its kind, surface description, and
// behavior.
type Command struct {
	Kind        Kind
	Name        string
	Description string
	Flags       []Flag
	run         runFunc
}

// table maps each command name to its behavior. Populated in init rather
// than a composite literal: the autocomplete handler lists command names via
// Names, which would otherwise form an initialization cycle through table.
var table map[string]Command

func init() {
	table = map[string]Command{
		"setup": {
			Kind:        KindSetup,
			Name:        "setup",
			Description: "Store the gateway address and user credentials",
			Flags: []Flag{
				{Name: "api_address", Required: true, Description: "Address of the remote gateway"},
				{Name: "username", Required: true, Description: "User name associated with the gateway user"},
				{Name: "password", Required: true, Description: "Password associated with the gateway user"},
			},
			run: runSetup,
		},
		"login": {
			Kind:        KindLogin,
			Name:        "login",
			Description: "Authenticate and fetch the command catalog matching your permissions",
			run:         runLogin,
		},
		"cleanup": {
			Kind:        KindCleanup,
			Name:        "cleanup",
			Description: "Remove all configuration data related to the tool",
			run:         runCleanup,
		},
		"version": {
			Kind:        KindVersion,
			Name:        "version",
			Description: "Show client and gateway versions",
			Flags: []Flag{
				{Name: "module", Description: "Show the catalog version of the specified module"},
				{Name: "detailed", Alias: "d", Bool: true, Description: "List the version of every module"},
			},
			run: runVersion,
		},
		"enable_autocomplete": {
			Kind:        KindEnableAutocomplete,
			Name:        "enable_autocomplete",
			Description: "Generate a shell completion script for the available commands",
			run:         runEnableAutocomplete,
		},
		"disable_autocomplete": {
			Kind:        KindDisableAutocomplete,
			Name:        "disable_autocomplete",
			Description: "Remove the generated shell completion script",
			run:         runDisableAutocomplete,
		},
	}
}

// Lookup returns the static command registered under the given name.
func Lookup(name string) (Command, bool) {
	cmd, ok := table[name]
	return cmd, ok
}

// Names returns all static command names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Meta exposes the command in catalog form, for help rendering.
func (c Command) Meta() catalog.CommandMeta {
	metaParams := make([]catalog.Parameter, 0, len(c.Flags))
	for _, f := range c.Flags {
		metaParams = append(metaParams, catalog.Parameter{
			Name:        f.Name,
			Alias:       f.Alias,
			Required:    f.Required,
			Description: f.Description,
		})
	}
	return catalog.CommandMeta{
		Name:        c.Name,
		Description: c.Description,
		Parameters:  metaParams,
	}
}

// Schema derives the validation schema from the declared flags.
func (c Command) Schema() params.Schema {
	schema := make(params.Schema, 0, len(c.Flags))
	for _, f := range c.Flags {
		schema = append(schema, params.Spec{
			Flag:     "--" + f.Name,
			Required: f.Required,
			Bool:     f.Bool,
		})
	}
	return schema
}

// aliases maps each declared short spelling to its long flag.
func (c Command) aliases() map[string]string {
	m := make(map[string]string)
	for _, f := range c.Flags {
		if f.Alias != "" {
			m["-"+f.Alias] = "--" + f.Name
		}
	}
	return m
}

// Execute validates the raw tokens following the command name and runs the
// handler. Alias spellings are rewritten to their long form first. A --help
// token, or a setup invocation with no arguments at all, short-circuits into
// the command's usage text.
func (c Command) Execute(d Dependencies, tokens []string) (Result, error) {
	tokens = params.NormalizeAliases(c.aliases(), tokens)

	if helpRequested(tokens) || (c.Kind == KindSetup && len(tokens) == 0) {
		usage := render.Renderer{EntryPoint: d.EntryPoint}.Command(c.Meta(), []string{c.Name})
		return Result{Message: strings.TrimSuffix(usage, "\n")}, nil
	}

	vals, err := c.Schema().Validate(tokens)
	if err != nil {
		return Result{}, err
	}
	return c.run(d, vals)
}

func helpRequested(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "--help" {
			return true
		}
	}
	return false
}
