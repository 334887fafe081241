package incremental

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// IsSceneFile reports whether name is a source scene: it must end in
// .babylon, contain .babylon nowhere else, and not be an incremental output.
func IsSceneFile(name string) bool {
	if strings.Contains(name, formats.IncrementalPart) {
		return false
	}
	i := strings.Index(name, formats.BabylonExtension)
	return i >= 0 && i == len(name)-len(formats.BabylonExtension)
}

// Discover lists the scene files under root, sorted by path. Subdirectories
// are only searched when recursive is set.
func Discover(root string, recursive bool) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && IsSceneFile(e.Name()) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSceneFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
