// Package maven provides an HTTP client for Maven-layout repositories
// such as https://repo.jenkins-ci.org.
//
// # Usage
//
//	client := maven.NewClient(c, maven.DefaultRepository, time.Hour)
//
//	md, err := client.FetchMetadata(ctx, "org.jenkins-ci.plugins", "git", false)
//	if err != nil {
//	    return err
//	}
//	for _, v := range md.Versions { ... }
//
// # Operations
//
//   - [Client.FetchMetadata] reads maven-metadata.xml (cached for the TTL)
//   - [Client.Checksums] reads the .sha1 and .sha256 sidecars
//   - [Client.FetchManifest] reads META-INF/MANIFEST.MF from the archive
//     (cached without expiry, released artifacts are immutable)
//   - [Client.FetchZipEntry] and [Client.DownloadArtifact] give access to
//     the archive itself
//
// Errors wrap [integrations.ErrNotFound] and [integrations.ErrNetwork].
//
// [integrations.ErrNotFound]: github.com/matzehuels/updatecenter/pkg/integrations.ErrNotFound
// [integrations.ErrNetwork]: github.com/matzehuels/updatecenter/pkg/integrations.ErrNetwork
package maven
