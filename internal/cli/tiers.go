package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/pkg/catalog/filter"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// tiersCommand creates the tiers command.
func (c *CLI) tiersCommand() *cobra.Command {
	var (
		flags  sourceFlags
		maxAge time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "List the core versions that deserve their own update site",
		Long: `Tiers collects the core versions plugin releases depend on and lists
the LTS and weekly lines worth serving a version-capped update site for.

Each line stops at the first dependency released before --max-age. The
filter flags narrow the catalog before it is inspected.`,
		Example: `  updatecenter tiers -i plugins.json -o tiers.json
  updatecenter tiers --repository https://repo.jenkins-ci.org/releases --max-age 4000h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(c, cmd)
			if err != nil {
				return err
			}
			return c.runTiers(cmd.Context(), cfg, maxAge, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	flags.register(fs)
	fs.StringVarP(&flags.cfg.Output, "output", "o", "", "output file (default stdout)")
	fs.DurationVar(&maxAge, "max-age", filter.DefaultTierAge, "age at which a core release ends its line")

	return cmd
}

func (c *CLI) runTiers(ctx context.Context, cfg Config, maxAge time.Duration, stdout io.Writer) error {
	logger := c.Logger
	ctx = withLogger(ctx, logger)

	opts, err := cfg.Filter.filterOptions(logger)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer src.Close()
	prog.done(fmt.Sprintf("Loaded %s", src.desc))

	tiers, err := filter.Tiers(ctx, filter.Build(src, opts), filter.TierOptions{
		MaxAge: maxAge,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if err := writeJSONOutput(tiers, cfg.Output, stdout); err != nil {
		return err
	}

	printSuccess("Computed %d stable and %d weekly tiers", len(tiers.StableCores), len(tiers.WeeklyCores))
	printKeyValue("stable", joinVersions(tiers.StableCores))
	printKeyValue("weekly", joinVersions(tiers.WeeklyCores))
	if cfg.Output != "" {
		printFile(cfg.Output)
	}
	return nil
}

func joinVersions(vs []version.Number) string {
	s := make([]string, 0, len(vs))
	for _, v := range vs {
		s = append(s, v.String())
	}
	return strings.Join(s, ", ")
}
