// Package icons checks icon presence on disk and optimizes source icons.
package icons

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
)

// Ext is the icon file extension.
const Ext = ".svg"

// Path returns the icon path of coin inside dir.
func Path(dir, coin string) string {
	return filepath.Join(dir, strings.ToLower(coin)+Ext)
}

// Exists reports whether dir holds a regular file <lower(coin)>.svg.
// A missing file is not an error. An empty coin never has an icon.
func Exists(dir, coin string) bool {
	if strings.TrimSpace(coin) == "" {
		return false
	}
	info, err := os.Stat(Path(dir, coin))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FilterPresent returns the assets of list that have an icon in dir, in
// list order. Checks run on a pool of at most workers goroutines.
func FilterPresent(ctx context.Context, dir string, list []assets.ClassifiedAsset, workers int) ([]assets.ClassifiedAsset, error) {
	if len(list) == 0 {
		return []assets.ClassifiedAsset{}, nil
	}
	if workers <= 0 {
		workers = constants.DefaultWorkers
	}

	pool, err := ants.NewPool(min(workers, len(list)))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	present := make([]bool, len(list))
	var wg sync.WaitGroup
	for i := range list {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			present[i] = Exists(dir, list[i].Coin)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	out := make([]assets.ClassifiedAsset, 0, len(list))
	for i, ok := range present {
		if ok {
			out = append(out, list[i])
		}
	}
	return out, nil
}
