// Package filter implements the catalog filtering policies.
//
// Each filter wraps an inner [catalog.Catalog] and narrows one or both
// of its filterable views. Operations a filter does not override are
// delegated unchanged through struct embedding, so a chain behaves the
// same however it is grouped:
//
//	c := filter.NewTruncate(base, 50)
//	c = filter.NewAlphaBeta(c, true)   // drop experimental releases
//	c = filter.NewStable(c)            // LTS platform releases only
//	c = filter.NewVersionCap(c, filter.VersionCapOptions{
//	    CapCore:   version.MustParse("2.361"),
//	    CapPlugin: version.MustParse("2.361.4"),
//	})
//
// Filters only remove entries. Plugin histories left empty are dropped
// from the result. Every call works on a fresh snapshot obtained from
// the inner catalog.
//
// Per-artifact predicates such as [JavaVersion] implement [PluginFilter]
// and are applied with [NewFiltering]. [Build] composes the standard
// chain from [Options].
package filter
