package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/modular-tools/cli/internal/app"
	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/browser"
	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/completions"
	"github.com/modular-tools/cli/internal/domain"
	"github.com/modular-tools/cli/internal/params"
	"github.com/modular-tools/cli/internal/paths"
	"github.com/modular-tools/cli/internal/render"
	"github.com/modular-tools/cli/internal/resolve"
	"github.com/modular-tools/cli/internal/static"
	"github.com/modular-tools/cli/internal/ui"
	"github.com/modular-tools/cli/internal/ui/style"
)

const entryPoint = "mcli"

func main() {
	args := os.Args[1:]

	tokens, rawParams := splitTokens(args)
	opts := extractGlobalOptions(&rawParams)

	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !opts.noColor
	style.Init(enableColor)

	if opts.noPager {
		ui.DisablePager()
	}
	if opts.pager != "" {
		ui.SetPager(opts.pager)
	}

	a, err := app.New(app.Options{})
	if err != nil {
		fail(err)
	}
	defer func() { _ = app.Close(a) }()

	a.Logger.Debug("invocation: tokens=%v", tokens)

	result, err := run(a, tokens, rawParams, opts)
	if err != nil {
		a.Logger.Error("%v", err)
		fail(err)
	}

	if result.paged {
		ui.Pager(result.message)
	} else if result.message != "" {
		fmt.Println(result.message)
	}
	for _, w := range result.warnings {
		fmt.Fprintln(os.Stderr, style.Warning("WARNING: "+w))
	}
}

// globalOptions are the flags that apply to every invocation rather than to
// one command.
type globalOptions struct {
	help        bool
	interactive bool
	noColor     bool
	noPager     bool
	pager       string
}

type runResult struct {
	message  string
	warnings []string
	// paged output goes through the pager; command results never do
	paged bool
}

// splitTokens separates the command path from its parameters. The path is
// the leading run of non-flag arguments; everything from the first flag on
// is parameters, including any non-flag values that follow a flag.
func splitTokens(args []string) (tokens, rawParams []string) {
	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// extractGlobalOptions pulls the global flags out of the parameter list,
// leaving the command's own flags behind. A --help token stays in place so
// command-level handling can see it.
func extractGlobalOptions(rawParams *[]string) globalOptions {
	var opts globalOptions
	kept := (*rawParams)[:0]

	for _, p := range *rawParams {
		switch {
		case p == "--help":
			opts.help = true
			kept = append(kept, p)
		case p == "--interactive":
			opts.interactive = true
		case p == "--no-color":
			opts.noColor = true
		case p == "--no-pager":
			opts.noPager = true
		case strings.HasPrefix(p, "--pager="):
			opts.pager = strings.TrimPrefix(p, "--pager=")
		default:
			kept = append(kept, p)
		}
	}

	*rawParams = kept
	return opts
}

// run routes one invocation: static commands first, then root commands, then
// catalog resolution and remote dispatch.
func run(a *domain.Application, tokens, rawParams []string, opts globalOptions) (runResult, error) {
	renderer := render.Renderer{EntryPoint: entryPoint}

	cat, err := a.Catalog.Load()
	if err != nil {
		return runResult{}, err
	}

	if len(tokens) == 0 || tokens[0] == "help" {
		if opts.interactive {
			return runResult{}, browser.Run(cat, entryPoint)
		}
		return runResult{message: renderer.Root(cat), paged: true}, nil
	}

	if cmd, ok := static.Lookup(tokens[0]); ok {
		deps := static.Dependencies{
			App:         a,
			Completions: completions.NewInstaller(afero.NewOsFs(), paths.CompletionsDir()),
			EntryPoint:  entryPoint,
			Version:     app.Version,
			Env:         os.Getenv,
		}
		args := append(append([]string(nil), tokens[1:]...), rawParams...)
		res, err := cmd.Execute(deps, args)
		if err != nil {
			return runResult{}, err
		}
		return runResult{message: res.Message, warnings: res.Warnings}, nil
	}

	if meta, ok := cat.Roots[tokens[0]]; ok {
		if opts.help {
			return runResult{message: renderer.Command(meta, tokens), paged: true}, nil
		}
		return dispatch(a, meta, tokens, rawParams)
	}

	res, err := resolve.Resolve(cat, tokens)
	if err != nil {
		return runResult{}, err
	}

	if res.Exact == nil {
		return runResult{message: renderer.Listing(res), paged: true}, nil
	}
	if opts.help {
		return runResult{message: renderer.Command(res.Exact.Meta, tokens), paged: true}, nil
	}
	return dispatch(a, res.Exact.Meta, tokens, rawParams)
}

// dispatch validates the parameters against the command's declaration and
// forwards the invocation to the gateway.
func dispatch(a *domain.Application, meta catalog.CommandMeta, tokens, rawParams []string) (runResult, error) {
	normalized := normalizeAliases(meta, rawParams)
	if _, err := schemaFor(meta).Validate(normalized); err != nil {
		return runResult{}, err
	}

	a.Logger.Info("dispatch %s", meta.Route.Path)
	res, err := a.Gateway.Execute(meta.Route.Path, normalized)
	if err != nil {
		return runResult{}, err
	}
	return runResult{message: res.Message, warnings: res.Warnings}, nil
}

func schemaFor(meta catalog.CommandMeta) params.Schema {
	schema := make(params.Schema, 0, len(meta.Parameters))
	for _, p := range meta.Parameters {
		schema = append(schema, params.Spec{Flag: "--" + p.Name, Required: p.Required})
	}
	return schema
}

// normalizeAliases rewrites short alias flags to their long form so that
// validation and the gateway see one spelling.
func normalizeAliases(meta catalog.CommandMeta, rawParams []string) []string {
	aliases := make(map[string]string)
	for _, p := range meta.Parameters {
		if p.Alias != "" {
			aliases["-"+p.Alias] = "--" + p.Name
		}
	}
	return params.NormalizeAliases(aliases, rawParams)
}

// fail prints the error and exits with the code its kind maps to. Anything
// outside the error taxonomy is an environment failure.
func fail(err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		fmt.Fprintln(os.Stderr, style.Error(ae.Error()))
		os.Exit(ae.ExitCode())
	}
	fmt.Fprintln(os.Stderr, style.Error(err.Error()))
	os.Exit(1)
}
