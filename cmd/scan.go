package cmd

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"skylift/pkg/detect"
)

// scanTree walks the project and returns slash-separated relative file paths.
// Hidden and dependency directories are skipped. The detection core never
// touches the filesystem; this listing is its only view of the project.
func scanTree(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		base := filepath.Base(p)
		if d.IsDir() && p != root &&
			(strings.HasPrefix(base, ".") || base == "node_modules" || base == "venv") {
			return filepath.SkipDir
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	return files, err
}

// readPackageJSON loads the manifest subset detection inspects, or nil when
// the project has none.
func readPackageJSON(root string) (*detect.PackageJSON, error) {
	b, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var pkg detect.PackageJSON
	if err := json.Unmarshal(b, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}
