// Package embedded provides access to data files compiled into the slidedeck binary.
package embedded

import _ "embed"

// LayoutCatalogData contains the embedded layout catalog YAML data.
//
//go:embed layouts.yaml
var LayoutCatalogData []byte
