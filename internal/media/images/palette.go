package images

import (
	"image"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// DominantColor returns the most prominent colour of img as six hex digits
// without a leading '#', the form marketplaces expect for background_color.
// ok is false when no colour could be determined.
func DominantColor(img image.Image) (hex string, ok bool) {
	c, ok := colorful.MakeColor(dominantcolor.Find(img))
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(c.Clamped().Hex(), "#"), true
}
