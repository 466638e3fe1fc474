package catalog

import _ "embed"

// rootCatalogJSON is the bundled root catalog. Root commands listed here are
// available without module qualification and survive every dynamic refresh.
//
//go:embed data/root_commands.json
var rootCatalogJSON []byte
