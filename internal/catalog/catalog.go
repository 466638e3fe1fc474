// Package catalog loads and merges the command metadata this tool operates
// on: a bundled root catalog that ships with the binary and a per-session
// catalog fetched at login and cached on disk.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parameter describes one flag a command accepts.
type Parameter struct {
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Route holds the canonical position of a command within the catalog.
type Route struct {
	Path string `json:"path"`
}

// CommandMeta is the atomic catalog entry. Route.Path is unique across the
// merged catalog; its depth determines group/subgroup membership.
type CommandMeta struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Route       Route       `json:"route"`
	Type        string      `json:"type,omitempty"`
}

// Placement derives the group and subgroup of the command from its route
// path. Paths are either /module/group/command (no subgroup) or
// /module/group/subgroup/command.
func (m CommandMeta) Placement() (group, subgroup string) {
	segs := routeSegments(m.Route.Path)
	if len(segs) == 4 {
		return segs[1], segs[2]
	}
	if len(segs) >= 2 {
		return segs[len(segs)-2], ""
	}
	return "", ""
}

// CommandSet maps a group name to the command it contributes at that
// position. Modules carry an ordered sequence of these.
type CommandSet map[string]CommandMeta

// Module is one top-level namespace of commands.
type Module struct {
	Type    string
	Version string
	Sets    []CommandSet
}

// Catalog is the unified command catalog.
type Catalog struct {
	Modules map[string]*Module
	Roots   map[string]CommandMeta
}

// Empty reports whether the catalog has no entries at all.
func (c *Catalog) Empty() bool {
	return len(c.Modules) == 0 && len(c.Roots) == 0
}

// moduleEnvelope is the alternative on-disk form of a module entry, used by
// catalogs that carry per-module version information.
type moduleEnvelope struct {
	Type    string       `json:"type"`
	Version string       `json:"version"`
	Body    []CommandSet `json:"body"`
}

// Parse decodes a catalog document. Top-level values are either an array of
// command sets (a module), an object with a "body" array (a module with
// version information), or a single command entry (a root command).
func Parse(data []byte) (*Catalog, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cat := &Catalog{
		Modules: make(map[string]*Module),
		Roots:   make(map[string]CommandMeta),
	}

	for name, raw := range entries {
		mod, meta, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("decode catalog entry %q: %w", name, err)
		}
		if mod != nil {
			if err := validateRoutes(mod); err != nil {
				return nil, fmt.Errorf("module %q: %w", name, err)
			}
			cat.Modules[name] = mod
			continue
		}
		cat.Roots[name] = *meta
	}

	return cat, nil
}

func decodeEntry(raw json.RawMessage) (*Module, *CommandMeta, error) {
	var sets []CommandSet
	if err := json.Unmarshal(raw, &sets); err == nil {
		return &Module{Type: "module", Sets: sets}, nil, nil
	}

	var env moduleEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Body != nil {
		typ := env.Type
		if typ == "" {
			typ = "module"
		}
		return &Module{Type: typ, Version: env.Version, Sets: env.Body}, nil, nil
	}

	var meta CommandMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, err
	}
	if meta.Name == "" && meta.Route.Path == "" {
		return nil, nil, fmt.Errorf("entry is neither a module nor a command")
	}
	return nil, &meta, nil
}

// validateRoutes rejects route paths of undocumented depth. Only
// /module/group/command and /module/group/subgroup/command shapes exist;
// anything else is a malformed catalog, not something to guess at.
func validateRoutes(mod *Module) error {
	for _, set := range mod.Sets {
		for _, meta := range set {
			n := len(routeSegments(meta.Route.Path))
			if n != 3 && n != 4 {
				return fmt.Errorf("unsupported route depth for path %q", meta.Route.Path)
			}
		}
	}
	return nil
}

func routeSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
