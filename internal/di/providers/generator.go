package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/traitmint/internal/catalog"
	"github.com/listenupapp/traitmint/internal/combination"
	"github.com/listenupapp/traitmint/internal/config"
	"github.com/listenupapp/traitmint/internal/generator"
	"github.com/listenupapp/traitmint/internal/logger"
	"github.com/listenupapp/traitmint/internal/media/images"
	"github.com/listenupapp/traitmint/internal/metadata"
)

// ProvideCatalog loads the trait catalog. A missing or empty category fails here,
// before anything is written.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := catalog.NewLoader(log.Logger).Load(cfg.Paths.LayersPath, cfg.Collection.Categories)
	if err != nil {
		return nil, err
	}

	log.Info("Trait catalog loaded",
		"categories", len(cat.Categories()),
		"combinations", cat.Size(),
	)

	return cat, nil
}

// ProvideGenerator provides the collection generator.
func ProvideGenerator(i do.Injector) (*generator.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := do.Invoke[*catalog.Catalog](i)
	if err != nil {
		return nil, err
	}
	compositor, err := do.Invoke[*images.Compositor](i)
	if err != nil {
		return nil, err
	}
	storages, err := do.Invoke[*OutputStorages](i)
	if err != nil {
		return nil, err
	}
	emitter, err := do.Invoke[*metadata.Emitter](i)
	if err != nil {
		return nil, err
	}

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("Sampler seeded", "seed", seed)

	return generator.New(generator.Deps{
		Catalog:  cat,
		Sampler:  combination.NewSampler(cat, combination.NewRand(seed)),
		Composer: compositor,
		Images:   storages.Images,
		Emitter:  emitter,
		Logger:   log.Logger,
	}, generator.Options{
		Count:              cfg.Collection.Count,
		MaxDuplicateStreak: cfg.Generation.MaxDuplicateStreak,
		DetectExhaustion:   cfg.Generation.DetectExhaustion,
		BackgroundColor:    cfg.Collection.BackgroundColor,
	})
}
