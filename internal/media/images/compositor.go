package images

import (
	"errors"
	"image"
	"log/slog"
)

// ErrNoLayers is returned when Compose is called without any layer.
var ErrNoLayers = errors.New("no layers to compose")

// Compositor stacks trait images into a single picture.
type Compositor struct {
	imaging Imaging
	logger  *slog.Logger
}

// NewCompositor creates a new Compositor instance.
func NewCompositor(imaging Imaging, logger *slog.Logger) *Compositor {
	return &Compositor{
		imaging: imaging,
		logger:  logger,
	}
}

// Compose loads layers bottom first and alpha-composites each one over the result.
// The bottom layer fixes the output size; any other layer of a different size is
// resized to match before compositing.
func (c *Compositor) Compose(layers []string) (*image.RGBA, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	base, err := c.imaging.Load(layers[0])
	if err != nil {
		return nil, err
	}
	size := Size(base)

	for _, path := range layers[1:] {
		layer, err := c.imaging.Load(path)
		if err != nil {
			return nil, err
		}

		if got := Size(layer); got != size {
			c.logger.Debug("resizing layer",
				"path", path,
				"from", got.String(),
				"to", size.String(),
			)
			layer = c.imaging.Resize(layer, size)
		}

		c.imaging.Over(base, layer)
	}

	return base, nil
}
