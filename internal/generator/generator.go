// Package generator drives a collection run: draw a unique combination, composite it,
// and write its image and metadata, until the requested number of items exists.
package generator

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/listenupapp/traitmint/internal/catalog"
	"github.com/listenupapp/traitmint/internal/combination"
	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/media/images"
	"github.com/listenupapp/traitmint/internal/metadata"
	"github.com/listenupapp/traitmint/internal/validation"
)

// Composer stacks layer files into one image, bottom layer first.
type Composer interface {
	Compose(layers []string) (*image.RGBA, error)
}

// ImageStore persists composites by item id.
type ImageStore interface {
	SavePNG(id string, img image.Image) error
}

// Options control a run.
type Options struct {
	// Count is the number of items to produce.
	Count int `validate:"gte=1"`
	// MaxDuplicateStreak aborts the run after that many consecutive duplicate draws.
	// Zero retries forever.
	MaxDuplicateStreak int `validate:"gte=0"`
	// DetectExhaustion refuses a run that asks for more items than the catalog can produce.
	DetectExhaustion bool
	// BackgroundColor adds the composite's dominant colour to each record.
	BackgroundColor bool
}

// Deps are the collaborators a Generator drives.
type Deps struct {
	Catalog  *catalog.Catalog
	Sampler  *combination.Sampler
	Composer Composer
	Images   ImageStore
	Emitter  *metadata.Emitter
	Logger   *slog.Logger
}

// Item is one accepted, written collection member.
type Item struct {
	ID          int
	Combination combination.Combination
	BlurHash    string
	Metadata    metadata.Record
}

// Summary describes a finished or interrupted run.
type Summary struct {
	Items      []Item
	Duplicates int
	Elapsed    time.Duration
}

// Generator owns all state of a single run.
type Generator struct {
	catalog  *catalog.Catalog
	sampler  *combination.Sampler
	composer Composer
	images   ImageStore
	emitter  *metadata.Emitter
	logger   *slog.Logger
	opts     Options

	seen   *combination.Set
	nextID int
}

// New creates a Generator. It fails with a validation error on bad options.
func New(deps Deps, opts Options) (*Generator, error) {
	if err := validation.New().Validate(opts); err != nil {
		return nil, err
	}
	if deps.Catalog == nil || deps.Sampler == nil || deps.Composer == nil ||
		deps.Images == nil || deps.Emitter == nil {
		return nil, domainerrors.Internalf("generator: missing dependency")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		catalog:  deps.Catalog,
		sampler:  deps.Sampler,
		composer: deps.Composer,
		images:   deps.Images,
		emitter:  deps.Emitter,
		logger:   logger,
		opts:     opts,
		seen:     combination.NewSet(),
		nextID:   1,
	}, nil
}

// Run produces items until Count have been written, ctx is done, or an item fails.
// Items written before a failure stay on disk. The returned Summary always lists
// the items completed so far.
func (g *Generator) Run(ctx context.Context) (summary Summary, err error) {
	start := time.Now()
	defer func() { summary.Elapsed = time.Since(start) }()

	if g.opts.DetectExhaustion {
		if possible := g.catalog.Size(); possible < uint64(g.opts.Count) {
			return summary, domainerrors.Exhaustedf(
				"catalog allows %d unique combinations, %d requested", possible, g.opts.Count)
		}
	}

	g.logger.Info("starting generation",
		"count", g.opts.Count,
		"categories", g.catalog.Categories(),
		"combinations", g.catalog.Size(),
	)

	streak := 0
	for g.nextID <= g.opts.Count {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("generation stopped after %d items: %w", len(summary.Items), err)
		}

		combo, ok := g.sampler.Draw(g.seen)
		if !ok {
			summary.Duplicates++
			streak++
			g.logger.Debug("duplicate combination, retrying", "next_id", g.nextID, "streak", streak)
			if g.opts.MaxDuplicateStreak > 0 && streak >= g.opts.MaxDuplicateStreak {
				return summary, domainerrors.Exhaustedf(
					"%d consecutive duplicate draws after %d items", streak, len(summary.Items))
			}
			continue
		}
		streak = 0

		item, err := g.produce(g.nextID, combo)
		if err != nil {
			return summary, fmt.Errorf("generate item %d: %w", g.nextID, err)
		}
		summary.Items = append(summary.Items, item)
		g.nextID++
	}

	g.logger.Info("generation complete",
		"items", len(summary.Items),
		"duplicates", summary.Duplicates,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return summary, nil
}

// produce composites, stores, and describes one accepted combination.
func (g *Generator) produce(id int, combo combination.Combination) (Item, error) {
	layers := make([]string, len(combo))
	for i, pair := range combo {
		layers[i] = g.catalog.Path(pair.Category, pair.Trait)
	}

	img, err := g.composer.Compose(layers)
	if err != nil {
		return Item{}, err
	}

	if err := g.images.SavePNG(strconv.Itoa(id), img); err != nil {
		return Item{}, err
	}

	rec := g.emitter.Record(id, combo)
	if g.opts.BackgroundColor {
		if hex, ok := images.DominantColor(img); ok {
			rec.BackgroundColor = hex
		}
	}
	if err := g.emitter.Write(id, rec); err != nil {
		return Item{}, err
	}

	blurHash, err := images.ComputeBlurHash(img)
	if err != nil {
		g.logger.Warn("failed to compute blurhash", "id", id, "error", err)
	}

	g.logger.Info("Generated item",
		"id", id,
		"combination", combo,
		"blurhash", blurHash,
	)

	return Item{
		ID:          id,
		Combination: combo,
		BlurHash:    blurHash,
		Metadata:    rec,
	}, nil
}
