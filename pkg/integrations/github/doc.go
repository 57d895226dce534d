// Package github converts plugin source control URLs into GitHub
// repository slugs.
//
// # Usage
//
//	slug, err := github.ParseSlug("https://github.com/jenkinsci/git-plugin.git")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(slug)              // jenkinsci/git-plugin
//	fmt.Println(slug.Organization) // jenkinsci
//
// Blank URLs and URLs that do not mention github.com fail with an
// [errors.ErrCodeInvalidInput] error whose user message is
// "URL must be present" or "Invalid url: <url>".
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/updatecenter/pkg/errors
package github
