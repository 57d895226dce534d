// Package source holds the catalog collaborators that feed the filter
// chain.
//
//   - [index]: a local JSON index file, optionally zstd-compressed
//   - [maven]: a remote Maven-layout repository
//
// Both produce values implementing [catalog.Catalog].
//
// [index]: github.com/matzehuels/updatecenter/pkg/source/index
// [maven]: github.com/matzehuels/updatecenter/pkg/source/maven
// [catalog.Catalog]: github.com/matzehuels/updatecenter/pkg/catalog.Catalog
package source
