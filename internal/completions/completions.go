// Package completions generates and installs shell completion scripts from
// the merged command catalog. Hooking the script into the user's shell rc is
// left to the user; install only writes the script and says how to source it.
package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/modular-tools/cli/internal/catalog"
)

// Shell identifies a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// DetectShell infers the user's shell from $SHELL, defaulting to bash.
func DetectShell(env func(string) string) Shell {
	switch filepath.Base(env("SHELL")) {
	case "zsh":
		return ShellZsh
	default:
		return ShellBash
	}
}

// Words collects the completable first-level tokens: static command names,
// root commands, and modules, deduplicated and sorted.
func Words(cat *catalog.Catalog, static []string) []string {
	seen := make(map[string]bool)
	var words []string

	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			words = append(words, name)
		}
	}

	for _, name := range static {
		add(name)
	}
	for name := range cat.Roots {
		add(name)
	}
	for name := range cat.Modules {
		add(name)
	}

	sort.Strings(words)
	return words
}

// Generate renders the completion script for the given shell.
func Generate(shell Shell, entryPoint string, words []string) (string, error) {
	switch shell {
	case ShellBash:
		return generateBash(entryPoint, words), nil
	case ShellZsh:
		return generateZsh(entryPoint, words), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

func generateBash(entryPoint string, words []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s completion, generated file - do not edit\n", entryPoint)
	fmt.Fprintf(&b, "_%s_completions() {\n", entryPoint)
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"${COMP_WORDS[COMP_CWORD]}\"))\n", strings.Join(words, " "))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F _%s_completions %s\n", entryPoint, entryPoint)
	return b.String()
}

func generateZsh(entryPoint string, words []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s completion, generated file - do not edit\n", entryPoint)
	fmt.Fprintf(&b, "_%s_completions() {\n", entryPoint)
	fmt.Fprintf(&b, "    compadd %s\n", strings.Join(words, " "))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "compdef _%s_completions %s\n", entryPoint, entryPoint)
	return b.String()
}

// Installer writes completion scripts under one directory.
type Installer struct {
	fs  afero.Fs
	dir string
}

// NewInstaller creates an Installer rooted at dir.
func NewInstaller(fs afero.Fs, dir string) *Installer {
	return &Installer{fs: fs, dir: dir}
}

// ScriptPath returns the location of the script for the given shell.
func (i *Installer) ScriptPath(shell Shell) string {
	return filepath.Join(i.dir, fmt.Sprintf("completion.%s", shell))
}

// Install writes the script and returns its path.
func (i *Installer) Install(shell Shell, script string) (string, error) {
	if err := i.fs.MkdirAll(i.dir, 0o700); err != nil {
		return "", fmt.Errorf("create completions directory: %w", err)
	}

	path := i.ScriptPath(shell)
	if err := afero.WriteFile(i.fs, path, []byte(script), 0o600); err != nil {
		return "", fmt.Errorf("write completion script: %w", err)
	}
	return path, nil
}

// Uninstall removes the script for the given shell. Removing an absent
// script is not an error.
func (i *Installer) Uninstall(shell Shell) error {
	if err := i.fs.Remove(i.ScriptPath(shell)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove completion script: %w", err)
	}
	return nil
}
