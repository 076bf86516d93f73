// Package manifest reads the published manifest and writes the generated one.
package manifest

import (
	"context"
	"os"
	"sync"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Store guards the manifest files of one application directory.
// Update holds the write lock from load to final write and the loaders take
// the read lock, so readers of the same Store wait for a merge in progress
// instead of seeing the manifest of the previous run.
type Store struct {
	mu sync.RWMutex

	// Published is manifest.json of the published branch clone.
	Published string
	// Output is the generated manifest.json.
	Output string
	// Readable is the indented copy of Output.
	Readable string
}

// Read loads a manifest file. A missing file is a *errors.DependencyError.
func Read(path, hint string) (assets.Manifest, error) {
	var m assets.Manifest
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return m, errors.NewDependencyError("manifest file", path, hint, err)
		}
		return m, errors.WrapIO("read", path, err)
	}
	if err := atomicfile.ReadJSON(path, &m); err != nil {
		return m, err
	}
	return m.Normalized(), nil
}

// LoadPublished reads the published manifest.
func (s *Store) LoadPublished() (assets.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadPublished()
}

func (s *Store) loadPublished() (assets.Manifest, error) {
	return Read(s.Published, "Run 'bit clone' first.")
}

// LoadGenerated reads the generated manifest.
func (s *Store) LoadGenerated() (assets.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Read(s.Output, "Run 'bit build manifest' first.")
}

// Update loads the published manifest, passes it to merge and writes the
// result. The whole sequence runs under the store lock.
func (s *Store) Update(ctx context.Context, merge func(prior assets.Manifest) (assets.Manifest, error)) (assets.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, err := s.loadPublished()
	if err != nil {
		return assets.Manifest{}, err
	}
	if err := ctx.Err(); err != nil {
		return assets.Manifest{}, err
	}

	next, err := merge(prior)
	if err != nil {
		return assets.Manifest{}, err
	}
	if err := next.Validate(); err != nil {
		return assets.Manifest{}, err
	}
	if err := Write(s.Output, s.Readable, next); err != nil {
		return assets.Manifest{}, err
	}
	return next.Normalized(), nil
}

// Write writes m compactly to path and indented by two spaces to readable.
// Both files end with a newline. readable may be empty.
func Write(path, readable string, m assets.Manifest) error {
	m = m.Normalized()
	if err := atomicfile.WriteJSON(path, m, "", constants.FilePermissions); err != nil {
		return err
	}
	if readable == "" {
		return nil
	}
	return atomicfile.WriteJSON(readable, m, "  ", constants.FilePermissions)
}
