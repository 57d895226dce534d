// Package integrations provides HTTP clients for artifact repositories.
//
// The [Client] type is the shared transport: raw and streamed GETs, JSON
// caching of derived values through [cache.Cache], retry with backoff for transient failures
// and observability hooks for every request. Repository-specific clients
// live in subpackages:
//
//   - [maven]: Maven repositories (metadata, artifacts, checksums)
//   - [github]: GitHub repository URL parsing
//
// A run identifier attached with [WithRunID] is sent as the [RunIDHeader]
// header on every request made with that context.
//
// [maven]: github.com/matzehuels/updatecenter/pkg/integrations/maven
// [github]: github.com/matzehuels/updatecenter/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/updatecenter/pkg/cache.Cache
package integrations
