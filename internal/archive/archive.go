// Package archive packs and unpacks scene bundles: a zip holding a scene
// document and, optionally, a primitives/ directory of kind defaults.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PrimitivesDir is the bundle directory holding primitive definitions.
const PrimitivesDir = "primitives"

// Bundle locates the parts of an extracted bundle. PrimitivesDir is empty when
// the bundle carries no definitions.
type Bundle struct {
	SceneFile     string
	PrimitivesDir string
}

// IsBundle reports whether path names a zip file.
func IsBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Unzip extracts zipPath into destDir, preserving directory structure.
// destDir is created if needed. Entries that would land outside destDir are skipped.
// Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	// insecure names are still readable; they are filtered below
	r, err := zip.OpenReader(zipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Join(absDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := extract(f, dest); err != nil {
			return extracted, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Open extracts the bundle at zipPath into a directory named after it under
// destDir and locates its scene document: scene.json when present, otherwise
// the only top-level .json file.
func Open(zipPath, destDir string) (Bundle, error) {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	dir := filepath.Join(destDir, name)
	files, err := Unzip(zipPath, dir)
	if err != nil {
		return Bundle{}, err
	}
	absDir, _ := filepath.Abs(dir)
	var b Bundle
	var jsons []string
	for _, f := range files {
		rel, _ := filepath.Rel(absDir, f)
		rel = filepath.ToSlash(rel)
		switch {
		case strings.HasPrefix(rel, PrimitivesDir+"/"):
			b.PrimitivesDir = filepath.Join(absDir, PrimitivesDir)
		case !strings.Contains(rel, "/") && strings.EqualFold(filepath.Ext(rel), ".json"):
			jsons = append(jsons, f)
			if strings.EqualFold(rel, "scene.json") {
				b.SceneFile = f
			}
		}
	}
	if b.SceneFile == "" {
		if len(jsons) != 1 {
			return Bundle{}, fmt.Errorf("bundle %s: want scene.json or a single .json file, found %d", zipPath, len(jsons))
		}
		b.SceneFile = jsons[0]
	}
	return b, nil
}

// Pack writes a bundle to w: the scene document as scene.json and every
// .yaml/.yml file of primitivesDir under primitives/. An empty primitivesDir is skipped.
func Pack(w io.Writer, sceneFile, primitivesDir string) error {
	zw := zip.NewWriter(w)
	if err := addFile(zw, sceneFile, "scene.json"); err != nil {
		zw.Close()
		return fmt.Errorf("pack: %w", err)
	}
	if primitivesDir != "" {
		entries, err := os.ReadDir(primitivesDir)
		if err != nil && !os.IsNotExist(err) {
			zw.Close()
			return fmt.Errorf("pack: %w", err)
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			if err := addFile(zw, filepath.Join(primitivesDir, e.Name()), PrimitivesDir+"/"+e.Name()); err != nil {
				zw.Close()
				return fmt.Errorf("pack: %w", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
