package catalog

// Merge overlays the dynamic catalog on top of the root catalog. Dynamic
// modules and root commands replace root-catalog entries of the same name,
// but the root catalog's own root-command set is re-unioned afterwards so
// root commands stay visible after a dynamic refresh. Merging is idempotent.
func Merge(root, dynamic *Catalog) *Catalog {
	out := &Catalog{
		Modules: make(map[string]*Module, len(root.Modules)+len(dynamic.Modules)),
		Roots:   make(map[string]CommandMeta, len(root.Roots)+len(dynamic.Roots)),
	}

	for name, mod := range root.Modules {
		out.Modules[name] = mod
	}
	for name, meta := range root.Roots {
		out.Roots[name] = meta
	}

	for name, mod := range dynamic.Modules {
		out.Modules[name] = mod
	}
	for name, meta := range dynamic.Roots {
		out.Roots[name] = meta
	}

	// Root commands always come from the bundled catalog.
	for name, meta := range root.Roots {
		out.Roots[name] = meta
	}

	return out
}
