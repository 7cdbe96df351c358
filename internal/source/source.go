package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Scan lists the image files in dir ordered by modification time ascending.
// The returned order is the pool order and must not be re-sorted downstream.
// An existing but empty directory yields an empty pool, not an error.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		path    string
		modTime int64
	}

	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].modTime < found[j].modTime
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}

// Pool resolves a pool argument into the ordered list of image paths it
// provides. A directory is scanned by modification time; a .pdf file has its
// pages rendered into workDir in page order.
func Pool(path string, dpi int, workDir string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			return RenderPDF(path, dpi, workDir)
		}
		return nil, fmt.Errorf("pool %s is neither a directory nor a PDF file", path)
	}

	return Scan(path)
}
