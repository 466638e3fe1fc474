package static

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modular-tools/cli/internal/apperr"
	"github.com/modular-tools/cli/internal/completions"
	"github.com/modular-tools/cli/internal/params"
)

func runSetup(d Dependencies, vals []params.Value) (Result, error) {
	// vals follow flag declaration order: api_address, username, password
	for _, v := range vals {
		key := strings.TrimPrefix(v.Flag, "--")
		if err := d.App.Config.Set(key, v.Str); err != nil {
			return Result{}, apperr.New(apperr.Internal, "save configuration: %v", err)
		}
	}
	return Result{Message: "Configuration saved"}, nil
}

func runLogin(d Dependencies, _ []params.Value) (Result, error) {
	username, uok := d.App.Config.Get("username")
	_, pok := d.App.Config.Get("password")
	if !uok || !pok {
		return Result{}, apperr.New(apperr.ServiceUnavailable,
			"the tool is not configured, run '%s setup' first", d.EntryPoint)
	}
	password, _ := d.App.Config.Get("password")

	res, err := d.App.Gateway.Login(username, password)
	if err != nil {
		return Result{}, err
	}

	if len(res.Catalog) > 0 {
		if err := d.App.Catalog.SaveDynamic(res.Catalog); err != nil {
			return Result{}, err
		}
	}
	if err := d.App.Config.Set("access_token", res.Token); err != nil {
		return Result{}, apperr.New(apperr.Internal, "save access token: %v", err)
	}
	if res.Version != "" {
		if err := d.App.Config.Set("server_version", res.Version); err != nil {
			return Result{}, apperr.New(apperr.Internal, "save gateway version: %v", err)
		}
	}

	return Result{Message: "Login successful", Warnings: res.Warnings}, nil
}

func runCleanup(d Dependencies, _ []params.Value) (Result, error) {
	if err := d.App.Catalog.RemoveDynamic(); err != nil {
		return Result{}, err
	}
	if err := d.App.Config.Clear(); err != nil {
		return Result{}, apperr.New(apperr.Internal, "remove configuration: %v", err)
	}
	return Result{Message: "Configuration cleaned up"}, nil
}

func runVersion(d Dependencies, vals []params.Value) (Result, error) {
	// vals follow flag declaration order: module, detailed
	module := vals[0]
	detailed := vals[1]

	if module.Set {
		cat, err := d.App.Catalog.Load()
		if err != nil {
			return Result{}, err
		}
		mod, ok := cat.Modules[module.Str]
		if !ok {
			return Result{Message: fmt.Sprintf("Provided module does not exist: %s", module.Str)}, nil
		}
		return Result{Message: moduleVersion(mod.Version)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.EntryPoint, d.Version)
	if server, ok := d.App.Config.Get("server_version"); ok {
		fmt.Fprintf(&b, "\ngateway %s", server)
	}

	if detailed.Bool {
		cat, err := d.App.Catalog.Load()
		if err != nil {
			return Result{}, err
		}

		names := make([]string, 0, len(cat.Modules))
		for name := range cat.Modules {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(&b, "\n%s\t%s", name, moduleVersion(cat.Modules[name].Version))
		}
	}

	return Result{Message: b.String()}, nil
}

func moduleVersion(version string) string {
	if version == "" {
		return "unknown"
	}
	return version
}

func runEnableAutocomplete(d Dependencies, _ []params.Value) (Result, error) {
	cat, err := d.App.Catalog.Load()
	if err != nil {
		return Result{}, err
	}

	shell := completions.DetectShell(d.Env)
	script, err := completions.Generate(shell, d.EntryPoint, completions.Words(cat, Names()))
	if err != nil {
		return Result{}, apperr.New(apperr.Internal, "generate completion script: %v", err)
	}

	path, err := d.Completions.Install(shell, script)
	if err != nil {
		return Result{}, apperr.New(apperr.Internal, "install completion script: %v", err)
	}

	message := fmt.Sprintf(
		"Autocomplete enabled for %s. Add the following line to your shell profile:\n  source %s",
		shell, path)
	return Result{Message: message}, nil
}

func runDisableAutocomplete(d Dependencies, _ []params.Value) (Result, error) {
	shell := completions.DetectShell(d.Env)
	if err := d.Completions.Uninstall(shell); err != nil {
		return Result{}, apperr.New(apperr.Internal, "remove completion script: %v", err)
	}
	return Result{Message: "Autocomplete disabled"}, nil
}
