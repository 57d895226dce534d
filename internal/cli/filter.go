package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/pkg/catalog"
	"github.com/matzehuels/updatecenter/pkg/catalog/filter"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/source/index"
)

// Output formats of the filter command.
const (
	formatIndex        = "index"
	formatUpdateCenter = "update-center"
)

// filterCommand creates the filter command.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		flags  sourceFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a release catalog",
		Long: `Filter loads a catalog from a local index or a Maven repository, applies
the selected filters and writes the result.

The index format (default) can be read back with --index. The
update-center format lists the newest core and the newest release of
each remaining plugin.`,
		Example: `  updatecenter filter -i plugins.json --only-stable-core --java-version 11 -o filtered.json
  updatecenter filter --repository https://repo.jenkins-ci.org/releases --plugins git,credentials --limit-plugin-core-dependency 2.426.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(c, cmd)
			if err != nil {
				return err
			}
			return c.runFilter(cmd.Context(), cfg, format, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	flags.register(fs)
	fs.StringVarP(&flags.cfg.Output, "output", "o", "", "output file (default stdout); a .zst suffix compresses index output")
	fs.StringVarP(&format, "format", "f", formatIndex, "output format: index or update-center")

	return cmd
}

func (c *CLI) runFilter(ctx context.Context, cfg Config, format string, stdout io.Writer) error {
	if format != formatIndex && format != formatUpdateCenter {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
	}

	runID := uuid.NewString()
	logger := c.Logger.With("run", runID[:8])
	ctx = integrations.WithRunID(withLogger(ctx, logger), runID)

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

	filtered := filter.Build(src, opts)

	before, err := summarize(ctx, src)
	if err != nil {
		return err
	}
	after, err := summarize(ctx, filtered)
	if err != nil {
		return err
	}

	if err := writeOutput(ctx, filtered, cfg.Output, format, runID, stdout); err != nil {
		return err
	}
	printSummary(before, after)
	printKeyValue("run", runID)
	if cfg.Output != "" {
		printFile(cfg.Output)
	}
	return nil
}

func writeOutput(ctx context.Context, cat catalog.Catalog, path, format, runID string, stdout io.Writer) error {
	if format == formatIndex && path != "" {
		return index.WriteFile(ctx, cat, path)
	}
	if format == formatIndex {
		return index.Write(ctx, cat, stdout)
	}
	uc, err := buildUpdateCenter(ctx, cat, runID)
	if err != nil {
		return err
	}
	return writeJSONOutput(uc, path, stdout)
}

// writeJSONOutput encodes v to stdout, or to path when set. A file is written
// in full to a temporary sibling and renamed into place.
func writeJSONOutput(v any, path string, stdout io.Writer) error {
	if path == "" {
		return encodeJSON(stdout, v)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".output-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encodeJSON(tmp, v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// catalogStats counts the filterable views of a catalog.
type catalogStats struct {
	Cores    int
	Plugins  int
	Releases int
}

func summarize(ctx context.Context, cat catalog.Catalog) (catalogStats, error) {
	platform, err := cat.PlatformReleases(ctx)
	if err != nil {
		return catalogStats{}, err
	}
	histories, err := cat.PluginHistories(ctx)
	if err != nil {
		return catalogStats{}, err
	}
	return catalogStats{
		Cores:    platform.Len(),
		Plugins:  len(histories),
		Releases: catalog.Count(histories),
	}, nil
}
