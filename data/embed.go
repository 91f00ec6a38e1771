// Package data bundles the seed catalog documents so the service can run
// without a remote data source.
package data

import (
	"embed"
	"path"
)

//go:embed seed/*.json
var seedFS embed.FS

// Seed returns the bundled document for a collection path such as
// "/products.json".
func Seed(collectionPath string) ([]byte, error) {
	return seedFS.ReadFile(path.Join("seed", path.Base(collectionPath)))
}
