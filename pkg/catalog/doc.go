// Package catalog defines the catalog capability shared by every
// filtering policy and by the collaborators that materialize a catalog
// from an index file or a remote repository.
//
// # Catalog
//
// A [Catalog] exposes plugin release histories, platform releases and
// pass-through artifact I/O. Filters in the filter sub-package embed an
// inner Catalog and override only the operations they narrow, so chains
// compose purely by delegation:
//
//	var c catalog.Catalog = index
//	c = filter.NewAlphaBeta(c, true)
//	c = filter.NewVersionCap(c, filter.VersionCapOptions{CapCore: core})
//
// # Snapshots
//
// Every call to [Catalog.PluginHistories] or [Catalog.PlatformReleases]
// returns freshly built containers owned by the caller. Implementations
// never hand out a slice or history they keep for later calls, so a
// filter may narrow its snapshot without affecting other callers.
// [Artifact] and [PlatformRelease] values are shared between snapshots;
// they are immutable apart from memoized manifest lookups.
package catalog
