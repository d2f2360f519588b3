package files

import (
	"context"
	"path"
	"strings"

	"github.com/pkg/errors"

	"imagesgallery/core/gallery"
)

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInvalidSize    = errors.New("invalid size")
)

// DefaultVariants maps size variants to directories under the files base URL.
var DefaultVariants = map[string]string{
	gallery.OriginalVariant:        "original",
	"fullsize":                     "fullsize",
	"thumbnail":                    "thumbnails",
	gallery.SquareThumbnailVariant: "square_thumbnails",
}

// DerivativeExtension is the extension of all generated derivative images.
const DerivativeExtension = ".jpg"

// WebStore resolves public file URLs.
// Originals are served under their stored name, derivatives under the stored
// name with DerivativeExtension. Records without derivatives use Fallback for
// every variant except the original one.
type WebStore struct {
	BaseURL  string
	Variants map[string]string
	Fallback string
}

func (s *WebStore) URL(ctx context.Context, record *gallery.Record, variant string) (string, error) {
	variants := s.Variants
	if variants == nil {
		variants = DefaultVariants
	}

	dir, ok := variants[variant]
	if !ok {
		return "", errors.Wrap(ErrUnknownVariant, variant)
	}

	name := record.Filename
	if variant != gallery.OriginalVariant {
		if !record.HasDerivative && s.Fallback != "" {
			return s.Fallback, nil
		}

		name = strings.TrimSuffix(name, path.Ext(name)) + DerivativeExtension
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + dir + "/" + name, nil
}

func (s *WebStore) ByteSize(ctx context.Context, record *gallery.Record) (int64, error) {
	if record.Size < 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "%d", record.Size)
	}

	return record.Size, nil
}

func (s *WebStore) Extension(record *gallery.Record) string {
	return strings.TrimPrefix(path.Ext(record.OriginalFilename), ".")
}
