// Package pkg provides the libraries behind updatecenter, which narrows
// plugin update-center catalogs to what an installation can use.
//
// # Overview
//
//  1. [catalog] - The Catalog interface, release histories and the
//     in-memory catalog
//  2. [catalog/filter] - Decorators that drop releases: alpha/beta,
//     stable core, truncation, version cap, Java version, allow list
//  3. [version] - Dotted version numbers and Java specification versions
//  4. [manifest] - Plugin manifest attributes read from HPI archives
//  5. [source] - Base catalogs from JSON index files or Maven repositories
//  6. [integrations] - HTTP clients for Maven repositories and GitHub slug
//     parsing
//  7. [cache] - File, Redis and no-op caches shared by the clients
//
// # Data Flow
//
//	index file / Maven repository
//	         ↓
//	    [source] (base catalog)
//	         ↓
//	    [catalog/filter] (decorator chain)
//	         ↓
//	    index file / update-center JSON
//
// # Quick Start
//
//	base, err := index.Load("plugins.json")
//	if err != nil {
//	    return err
//	}
//	filtered := filter.Build(base, filter.Options{
//	    StableCore:  true,
//	    CapPlugin:   version.MustParse("2.426.1"),
//	    JavaVersion: version.Java11,
//	})
//	err = index.WriteFile(ctx, filtered, "filtered.json")
//
// Every filter returns fresh snapshots; the wrapped catalog is never
// modified, so one base catalog can serve many differently configured
// chains.
//
// [catalog]: github.com/matzehuels/updatecenter/pkg/catalog
// [catalog/filter]: github.com/matzehuels/updatecenter/pkg/catalog/filter
// [version]: github.com/matzehuels/updatecenter/pkg/version
// [manifest]: github.com/matzehuels/updatecenter/pkg/manifest
// [source]: github.com/matzehuels/updatecenter/pkg/source
// [integrations]: github.com/matzehuels/updatecenter/pkg/integrations
// [cache]: github.com/matzehuels/updatecenter/pkg/cache
package pkg
