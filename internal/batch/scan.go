package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

// ListDocuments returns the resume documents directly inside dir, sorted by
// name, and the number of directory entries scanned.
func ListDocuments(dir string) ([]string, int, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, 0, common.InputError("no folder provided", nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, 0, common.InputError(fmt.Sprintf("folder %s is not accessible", dir), err)
	}
	if !info.IsDir() {
		return nil, 0, common.InputError(fmt.Sprintf("%s is not a folder", dir), nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, common.InputError(fmt.Sprintf("read folder %s", dir), err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || IsHidden(e.Name()) {
			continue
		}
		if !constants.IsAllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, len(entries), nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
