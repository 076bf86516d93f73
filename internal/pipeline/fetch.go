package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
)

// FetchResult summarizes a fetch.
type FetchResult struct {
	Total  int
	Counts map[assets.Category]int
	Names  int
	Issues []assets.Issue
}

// Fetch pulls every asset from source, classifies them and writes the
// intermediate files of the generated directory.
func (b *Builder) Fetch(ctx context.Context, source AssetSource) (*FetchResult, error) {
	log := logging.FromContext(ctx)

	snap, err := source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	issues := assets.Validate(snap.Assets)
	for _, is := range issues {
		log.Warn().
			Int("index", is.Index).
			Str("coin", is.Coin).
			Str("field", is.Field).
			Msg("Malformed asset record: " + is.Reason)
	}

	classified := assets.Classify(snap.Assets)

	// icon directories are left to the icons phase
	if err := os.MkdirAll(b.layout.Generated(), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", b.layout.Generated(), err)
	}

	if err := writeAll(b.layout.AllFile(), snap.Raw, snap.Assets); err != nil {
		return nil, err
	}

	res := &FetchResult{
		Total:  len(snap.Assets),
		Counts: make(map[assets.Category]int, 3),
		Issues: issues,
	}
	for _, c := range assets.Categories() {
		list := assets.SortByCoin(classified.Category(c))
		if err := atomicfile.WriteJSON(b.layout.CategoryFile(c), list, "  ", constants.FilePermissions); err != nil {
			return nil, err
		}
		res.Counts[c] = len(list)
		log.Info().Str("category", c.String()).Int("count", len(list)).Msg("Extracted assets")
	}

	names := assets.BuildNameIndex(classified.All())
	if err := atomicfile.WriteJSON(b.layout.NamesFile(), names, "  ", constants.FilePermissions); err != nil {
		return nil, err
	}
	res.Names = len(names)
	return res, nil
}

// writeAll writes the payload as received, indented by two spaces.
func writeAll(path string, raw []byte, list []assets.RawAsset) error {
	if len(raw) == 0 {
		return atomicfile.WriteJSON(path, list, "  ", constants.FilePermissions)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return errors.WrapParse("json", path, err)
	}
	buf.WriteByte('\n')
	return atomicfile.WriteFile(path, buf.Bytes(), constants.FilePermissions)
}
