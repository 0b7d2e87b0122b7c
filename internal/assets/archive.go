package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Shapefile is a shapefile on local disk. Close removes any temporary
// files created to hold it.
type Shapefile struct {
	Path string
	tmp  string
}

// Close removes the extraction directory, if any.
func (s *Shapefile) Close() error {
	if s.tmp == "" {
		return nil
	}
	return os.RemoveAll(s.tmp)
}

// OpenShapefile makes ref available as a local .shp file. Zip bundles are
// extracted into a temporary directory; remote .shp files are downloaded
// together with their .shx and .dbf siblings; local .shp files are used in
// place.
func OpenShapefile(ctx context.Context, src Source, ref string) (*Shapefile, error) {
	ext := strings.ToLower(path.Ext(ref))
	switch {
	case ext == ".zip":
		data, err := src.Fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		return extractShapefile(data)
	case ext == ".shp" && !isRemote(ref):
		return &Shapefile{Path: strings.TrimPrefix(ref, "file://")}, nil
	case ext == ".shp":
		return downloadShapefile(ctx, src, ref)
	default:
		return nil, fmt.Errorf("not a shapefile: %s", ref)
	}
}

func extractShapefile(data []byte) (*Shapefile, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	dir, err := os.MkdirTemp("", "asciiglobe-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	s := &Shapefile{tmp: dir}

	if err := extractZip(r, dir); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to extract: %w", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.shp"))
	if len(matches) == 0 {
		s.Close()
		return nil, fmt.Errorf("zip contains no .shp file")
	}
	s.Path = matches[0]
	return s, nil
}

// extractZip flattens the archive into destDir, skipping directories and
// dot files.
func extractZip(r *zip.Reader, destDir string) error {
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

func downloadShapefile(ctx context.Context, src Source, ref string) (*Shapefile, error) {
	dir, err := os.MkdirTemp("", "asciiglobe-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	s := &Shapefile{tmp: dir}

	base := strings.TrimSuffix(ref, path.Ext(ref))
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		data, err := src.Fetch(ctx, base+ext)
		if err != nil {
			s.Close()
			return nil, err
		}
		dest := filepath.Join(dir, "boundaries"+ext)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to save %s: %w", ext, err)
		}
	}
	s.Path = filepath.Join(dir, "boundaries.shp")
	return s, nil
}
