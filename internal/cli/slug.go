package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/pkg/integrations/github"
)

// slugCommand creates the slug command, which splits a GitHub repository
// URL into organization and repository name.
func (c *CLI) slugCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "slug <url>",
		Short:   "Parse a GitHub repository URL",
		Example: `  updatecenter slug https://github.com/jenkinsci/git-plugin.git`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := github.ParseSlug(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("parsed slug", "url", args[0], "slug", slug.String())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(slug)
			}
			fmt.Fprintln(out, slug.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print organization and name as JSON")
	return cmd
}
