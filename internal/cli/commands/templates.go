package commands

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:templates
var templateFS embed.FS

// copyTemplates writes the embedded scaffold files into targetDir and returns
// the names written. Existing files are kept unless force is set.
func copyTemplates(targetDir string, force bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := renameSpecialFiles(filepath.Base(path))
		target := filepath.Join(targetDir, name)
		if !force {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}

		content, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0o600); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	})
	return written, err
}

// renameSpecialFiles maps embedded names to dotfiles.
func renameSpecialFiles(name string) string {
	switch name {
	case "gitignore":
		return ".gitignore"
	default:
		return name
	}
}
