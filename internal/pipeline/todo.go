package pipeline

import (
	"context"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
)

// Todo reports, per category, the fetched assets that have no icon in the
// published manifest.
func (b *Builder) Todo(ctx context.Context) ([]assets.Report, error) {
	published, err := b.store.LoadPublished()
	if err != nil {
		return nil, err
	}

	reports := make([]assets.Report, 0, 3)
	for _, c := range assets.Categories() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates, err := b.readCategory(c)
		if err != nil {
			return nil, err
		}
		reports = append(reports, assets.BuildReport(c, published.Category(c), candidates))
	}
	return reports, nil
}
