package series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ercot-lmp-viewer/internal/config"
	"ercot-lmp-viewer/internal/data"
	"ercot-lmp-viewer/internal/model"
)

// Source supplies prices for a node and market. Prices must return exactly
// one finite price per requested hour, in the same order.
type Source interface {
	Name() string
	Prices(ctx context.Context, node string, market model.Market, hours []time.Time) ([]float64, error)
}

// ErrSourceShape is returned when a source breaks the one-price-per-hour contract.
var ErrSourceShape = errors.New("source returned malformed prices")

// OpenSource returns the source named by cfg.Type.
func OpenSource(cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case "", config.SourceSynthetic:
		return data.NewSyntheticSource(), nil
	case config.SourceFile:
		return data.LoadFileSource(cfg.Files...)
	default:
		return nil, fmt.Errorf("unsupported source type: %q", cfg.Type)
	}
}
