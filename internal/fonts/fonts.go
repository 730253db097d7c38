// Package fonts locates TrueType and OpenType files for the editor overlay.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the extensions treated as font files.
var Exts = []string{".ttf", ".otf"}

// ErrNotFound is returned by Find when no font matches.
var ErrNotFound = errors.New("font not found")

// BaseDirs returns the directories searched when Find is given none, relative to the process cwd.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !IsFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// IsFont reports whether path has a font extension.
func IsFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and drops spaces, dashes and underscores.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Candidates returns the search terms tried in order for name:
// "Inter/Inter-Bold.ttf" gives the name itself, "Inter", then "Inter-Bold".
func Candidates(name string) []string {
	name = strings.TrimSpace(name)
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(name)
	if i := strings.IndexAny(name, "/\\"); i > 0 {
		add(name[:i])
	}
	base := filepath.Base(filepath.FromSlash(name))
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			add(base[:len(base)-len(ext)])
			break
		}
	}
	if i := strings.Index(base, "-"); i > 0 {
		add(base[:i])
	}
	return out
}

// Find resolves name to a font file. An existing file path is returned as is;
// otherwise each candidate term is matched against the fonts under dirs
// (BaseDirs when none are given). Among several matches a "Regular" face wins.
func Find(name string, dirs ...string) (string, error) {
	if IsFont(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	type font struct{ rel, full string }
	var all []font
	for _, dir := range dirs {
		list, err := ScanDir(dir)
		if err != nil {
			return "", fmt.Errorf("fonts: %w", err)
		}
		for _, rel := range list {
			all = append(all, font{rel, filepath.Join(dir, filepath.FromSlash(rel))})
		}
	}
	for _, term := range Candidates(name) {
		norm := normalize(term)
		var matches []font
		for _, f := range all {
			if strings.Contains(normalize(f.rel), norm) {
				matches = append(matches, f)
			}
		}
		if len(matches) == 0 {
			continue
		}
		for _, f := range matches {
			if strings.Contains(strings.ToLower(f.rel), "regular") {
				return f.full, nil
			}
		}
		return matches[0].full, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}
