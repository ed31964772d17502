package data

import (
	_ "embed"
)

// SeedCatalog is the demo catalog loaded into an empty course store when SEED_CATALOG is set
//
//go:embed seed/catalog.json
var SeedCatalog []byte
