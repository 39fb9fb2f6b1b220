package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/traitmint/internal/config"
	"github.com/listenupapp/traitmint/internal/logger"
	"github.com/listenupapp/traitmint/internal/media/images"
	"github.com/listenupapp/traitmint/internal/metadata"
)

// OutputStorages groups the run's output directories.
type OutputStorages struct {
	Images   *images.Storage
	Metadata *images.Storage
}

// ProvideOutputStorages provides the image and metadata output directories.
func ProvideOutputStorages(i do.Injector) (*OutputStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	imageStore, err := images.NewStorage(cfg.Paths.OutputPath, "images", ".png")
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}

	metadataStore, err := images.NewStorage(cfg.Paths.OutputPath, "metadata", ".json")
	if err != nil {
		return nil, fmt.Errorf("metadata storage: %w", err)
	}

	log.Info("Output storages initialized",
		"images", imageStore.Dir(),
		"metadata", metadataStore.Dir(),
	)

	return &OutputStorages{
		Images:   imageStore,
		Metadata: metadataStore,
	}, nil
}

// ProvideCompositor provides the layer compositor.
func ProvideCompositor(i do.Injector) (*images.Compositor, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewCompositor(images.NewImaging(), log.Logger), nil
}

// ProvideEmitter provides the metadata emitter.
func ProvideEmitter(i do.Injector) (*metadata.Emitter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storages, err := do.Invoke[*OutputStorages](i)
	if err != nil {
		return nil, err
	}

	return metadata.NewEmitter(storages.Metadata, metadata.Template{
		NamePrefix:   cfg.Collection.NamePrefix,
		Description:  cfg.Collection.Description,
		ImageBaseURI: cfg.Collection.ImageBaseURI,
	}, log.Logger), nil
}
