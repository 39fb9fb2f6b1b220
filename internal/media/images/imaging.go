package images

import (
	"errors"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	domainerrors "github.com/listenupapp/traitmint/internal/errors"
)

// Imaging is the set of raster operations the compositor needs.
// Every image it hands out is 4-channel RGBA anchored at (0,0).
type Imaging interface {
	// Load opens and decodes the image at path.
	Load(path string) (*image.RGBA, error)
	// Resize scales img to size.
	Resize(img *image.RGBA, size image.Point) *image.RGBA
	// Over alpha-composites src onto dst in place. Both share dst's bounds.
	Over(dst, src *image.RGBA)
}

// drawImaging implements Imaging with golang.org/x/image/draw.
type drawImaging struct {
	scaler draw.Scaler
}

// NewImaging returns the default Imaging. Resizing uses Catmull-Rom, which keeps
// edges smooth when trait art of different resolutions is mixed.
func NewImaging() Imaging {
	return &drawImaging{scaler: draw.CatmullRom}
}

func (d *drawImaging) Load(path string) (*image.RGBA, error) {
	file, err := os.Open(path) //#nosec G304 -- Trait paths come from the catalog
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeNotFound, "open trait %s", path)
		}
		return nil, domainerrors.Wrapf(err, domainerrors.CodeStorage, "open trait %s", path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeDecode, "decode trait %s", path)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return rgba, nil
}

func (d *drawImaging) Resize(img *image.RGBA, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	d.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func (d *drawImaging) Over(dst, src *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
}

// Size returns the pixel dimensions of img.
func Size(img image.Image) image.Point {
	return img.Bounds().Size()
}
