package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"spotlight/internal/catalog"
)

// maxDepth bounds how far below the root catalog files are looked for
const maxDepth = 3

// Service finds catalog files below a directory and merges them
type Service struct {
	log logr.Logger
}

// NewService creates a new discovery service
func NewService(log logr.Logger) *Service {
	return &Service{log: log.WithName("discovery")}
}

// Scan merges every *.yaml and *.yml catalog below root, in path order.
// The first file to define an id wins; later duplicates are skipped.
func (s *Service) Scan(ctx context.Context, root string) (*catalog.Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	merged := &catalog.Catalog{}
	seen := make(map[string]string)
	files := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Skip on error
		if err != nil {
			s.log.V(1).Info("skipping unreadable path", "path", path, "error", err.Error())
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			relPath, _ := filepath.Rel(root, path)
			depth := strings.Count(relPath, string(filepath.Separator)) + 1
			if depth > maxDepth || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !isCatalogFile(d.Name()) {
			return nil
		}

		c, err := catalog.Load(path)
		if err != nil {
			return err
		}
		files++
		for _, e := range c.Items {
			if first, dup := seen[e.ID]; dup {
				s.log.Info("duplicate catalog id skipped", "id", e.ID, "path", path, "first", first)
				continue
			}
			seen[e.ID] = path
			merged.Items = append(merged.Items, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.V(1).Info("catalog scan finished", "root", root, "files", files, "items", len(merged.Items))
	return merged, nil
}

func isCatalogFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
