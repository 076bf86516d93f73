package icons

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
)

// DefaultPrefix is the id prefix of non crypto icons ("Binance ICons").
const DefaultPrefix = "bic"

// configTemplate is the svgo config. The custom sortDefs plugin moves
// <defs> in front of its siblings.
const configTemplate = `module.exports = {
  multipass: true,
  plugins: [
    'preset-default',
    { name: 'cleanupIds', params: { minify: true } },
    {
      name: 'prefixIds',
      params: { prefix: %s, delim: '__', prefixIds: true, prefixClassNames: true }
    },
    'sortAttrs',
    {
      name: 'sortDefs',
      fn: () => ({
        element: {
          enter: (node, parentNode) => {
            if (node.name !== 'defs') return
            const defs = parentNode.children.filter(c => c.name === 'defs')
            const rest = parentNode.children.filter(c => c.name !== 'defs')
            parentNode.children = defs.concat(rest)
          }
        }
      })
    }
  ]
}
`

// Config returns the svgo configuration for prefix.
func Config(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	quoted, _ := json.Marshal(prefix)
	return fmt.Sprintf(configTemplate, quoted)
}

// PrefixFunc returns the id prefix of a source icon.
type PrefixFunc func(src string) string

// BaseNamePrefix prefixes ids with the icon's file name, e.g. "btc".
func BaseNamePrefix(src string) string {
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

// StaticPrefix prefixes every icon with p.
func StaticPrefix(p string) PrefixFunc {
	return func(string) string { return p }
}

// Optimizer runs the svgo CLI.
type Optimizer struct {
	// Binary is the svgo executable.
	Binary string

	// Workers caps concurrent svgo processes.
	Workers int
}

// NewOptimizer returns an optimizer for the svgo binary at path.
func NewOptimizer(path string, workers int) *Optimizer {
	if path == "" {
		path = "svgo"
	}
	if workers <= 0 {
		workers = constants.DefaultWorkers
	}
	return &Optimizer{Binary: path, Workers: workers}
}

// Optimize optimizes src into dst. dst is replaced atomically.
func (o *Optimizer) Optimize(ctx context.Context, src, dst, prefix string) error {
	cfg, err := os.CreateTemp("", "svgo-*.config.cjs")
	if err != nil {
		return errors.WrapIO("create", "svgo config", err)
	}
	defer func() { _ = os.Remove(cfg.Name()) }()
	if _, err := cfg.WriteString(Config(prefix)); err != nil {
		_ = cfg.Close()
		return errors.WrapIO("write", cfg.Name(), err)
	}
	if err := cfg.Close(); err != nil {
		return errors.WrapIO("write", cfg.Name(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.OptimizeTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	//nolint:gosec // binary is configured by the operator
	cmd := exec.CommandContext(ctx, o.Binary, "--config", cfg.Name(), "-i", src, "-o", "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.NewProcessError("optimize "+filepath.Base(src), o.Binary, strings.TrimSpace(stderr.String()), err)
	}
	if stdout.Len() == 0 {
		return errors.NewProcessError("optimize "+filepath.Base(src), o.Binary, strings.TrimSpace(stderr.String()), fmt.Errorf("empty output"))
	}

	return atomicfile.WriteFile(dst, stdout.Bytes(), constants.SecureFilePermissions)
}

// OptimizeDir optimizes every .svg of srcDir into dstDir and returns the
// number of files written. The first failure stops the run.
func (o *Optimizer) OptimizeDir(ctx context.Context, srcDir, dstDir string, prefix PrefixFunc) (int, error) {
	if _, err := os.Stat(srcDir); err != nil {
		return 0, errors.NewDependencyError("icon sources", srcDir, "Run 'bit clone' first.", err)
	}
	sources, err := filepath.Glob(filepath.Join(srcDir, "*"+Ext))
	if err != nil {
		return 0, errors.WrapIO("read", srcDir, err)
	}
	sort.Strings(sources)
	if len(sources) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dstDir, constants.DirPermissions); err != nil {
		return 0, errors.WrapIO("create", dstDir, err)
	}

	pool, err := ants.NewPool(min(o.Workers, len(sources)))
	if err != nil {
		return 0, err
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logging.FromContext(ctx)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		written  int
	)
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			dst := filepath.Join(dstDir, strings.ToLower(filepath.Base(src)))
			err := o.Optimize(ctx, src, dst, prefix(src))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			written++
			log.Debug().Str("icon", filepath.Base(dst)).Msg("Optimized")
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return written, firstErr
	}
	if err := ctx.Err(); err != nil {
		return written, err
	}
	return written, nil
}
