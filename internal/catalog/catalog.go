// Package catalog discovers the trait images available to each category.
package catalog

import (
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	domainerrors "github.com/listenupapp/traitmint/internal/errors"
)

// traitExtensions are matched case-sensitively against the end of the filename.
var traitExtensions = []string{".png", ".jpg", ".jpeg"}

// IsTraitFile reports whether name looks like a trait image.
func IsTraitFile(name string) bool {
	for _, ext := range traitExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Catalog maps each category to its trait filenames. It is immutable once loaded.
type Catalog struct {
	root       string
	categories []string
	traits     map[string][]string
}

// Loader reads a catalog from disk.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load lists the trait images under root/<category> for every category, in order.
// A category whose directory is missing, unreadable, or holds no images fails the load.
func (l *Loader) Load(root string, categories []string) (*Catalog, error) {
	c := &Catalog{
		root:       root,
		categories: slices.Clone(categories),
		traits:     make(map[string][]string, len(categories)),
	}

	for _, category := range categories {
		dir := filepath.Join(root, category)

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, domainerrors.Wrapf(err, domainerrors.CodeNotFound, "category %q has no directory", category)
			}
			return nil, domainerrors.Wrapf(err, domainerrors.CodeStorage, "read category %q", category)
		}

		var traits []string
		for _, entry := range entries {
			if entry.IsDir() || !IsTraitFile(entry.Name()) {
				continue
			}
			traits = append(traits, entry.Name())
		}

		if len(traits) == 0 {
			return nil, domainerrors.Validationf("category %q has no trait images in %s", category, dir)
		}

		c.traits[category] = traits

		l.logger.Debug("loaded category",
			"category", category,
			"traits", len(traits),
			"path", dir,
		)
	}

	return c, nil
}

// Root returns the directory the catalog was loaded from.
func (c *Catalog) Root() string {
	return c.root
}

// Categories returns the categories in stacking order, bottom first.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

// Traits returns the trait filenames for a category, sorted by name.
func (c *Catalog) Traits(category string) []string {
	return slices.Clone(c.traits[category])
}

// Count returns how many traits a category has.
func (c *Catalog) Count(category string) int {
	return len(c.traits[category])
}

// Trait returns the i-th trait of a category.
func (c *Catalog) Trait(category string, i int) string {
	return c.traits[category][i]
}

// Path returns the filesystem path of a trait image.
func (c *Catalog) Path(category, trait string) string {
	return filepath.Join(c.root, category, trait)
}

// Size returns the number of distinct combinations the catalog can produce,
// saturating at math.MaxUint64.
func (c *Catalog) Size() uint64 {
	if len(c.categories) == 0 {
		return 0
	}
	size := uint64(1)
	for _, category := range c.categories {
		n := uint64(len(c.traits[category]))
		if n != 0 && size > math.MaxUint64/n {
			return math.MaxUint64
		}
		size *= n
	}
	return size
}
