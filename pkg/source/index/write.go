package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/updatecenter/pkg/catalog"
)

// Snapshot captures the filtered views of cat as an index document.
// Digests, manifests and local files are included when the catalog can
// provide them; lookups that fail are left out of the entry. Local file
// paths are written relative to baseDir when possible.
func Snapshot(ctx context.Context, cat catalog.Catalog, baseDir string) (Document, error) {
	platform, err := cat.PlatformReleases(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("platform releases: %w", err)
	}
	histories, err := cat.PluginHistories(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("plugin histories: %w", err)
	}

	doc := Document{Cores: []Entry{}, Plugins: []Entry{}}
	for _, r := range platform.Releases() {
		e := entryFor(ctx, cat, r.Coordinates, baseDir)
		e.Version = r.Version.String()
		e.Timestamp = r.Timestamp
		doc.Cores = append(doc.Cores, e)
	}
	for _, h := range histories {
		for _, a := range h.Releases() {
			e := entryFor(ctx, cat, a.Coordinates, baseDir)
			e.Timestamp = a.Timestamp
			if mf, err := a.Manifest(ctx); err == nil && mf.Len() > 0 {
				e.Manifest = mf.Attributes()
			}
			doc.Plugins = append(doc.Plugins, e)
		}
	}
	return doc, nil
}

func entryFor(ctx context.Context, cat catalog.Catalog, c catalog.Coordinates, baseDir string) Entry {
	e := Entry{GroupID: c.GroupID, ArtifactID: c.ArtifactID, Version: c.Version, Packaging: c.Packaging}
	if d, err := cat.Digests(ctx, c); err == nil {
		e.SHA1, e.SHA256 = d.SHA1, d.SHA256
	}
	if p, err := cat.Resolve(ctx, c); err == nil {
		e.File = relativePath(baseDir, p)
	}
	return e
}

func relativePath(baseDir, p string) string {
	if baseDir == "" {
		return p
	}
	if rel, err := filepath.Rel(baseDir, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}

// Write encodes a snapshot of cat to w as indented JSON.
func Write(ctx context.Context, cat catalog.Catalog, w io.Writer) error {
	doc, err := Snapshot(ctx, cat, "")
	if err != nil {
		return err
	}
	return encode(w, doc)
}

// WriteFile writes a snapshot of cat to path, compressing it when path
// ends in ".zst". The file is replaced atomically.
func WriteFile(ctx context.Context, cat catalog.Catalog, path string) error {
	dir := filepath.Dir(path)
	doc, err := Snapshot(ctx, cat, dir)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".index-*")
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeDoc(tmp, doc, isCompressed(path)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func writeDoc(w io.Writer, doc Document, compress bool) error {
	if !compress {
		return encode(w, doc)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	if err := encode(zw, doc); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return nil
}
