package gallery

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

const (
	OriginalVariant        = "original"
	SquareThumbnailVariant = "square_thumbnail"

	LinkOriginal = "original"
	KindImage    = "image"
)

var ErrNoLinkRenderer = errors.New("no link renderer")

// Record is a stored file as seen by the renderer.
type Record struct {
	ID               int64
	Filename         string
	OriginalFilename string
	Size             int64
	MimeType         string
	HasDerivative    bool
}

type FileStore interface {
	URL(ctx context.Context, record *Record, variant string) (string, error)
	ByteSize(ctx context.Context, record *Record) (int64, error)
	Extension(record *Record) string
}

// CaptionStore resolves the first available caption for each of the ids.
// Ids without a caption are absent from the result.
type CaptionStore interface {
	FirstCaptions(ctx context.Context, ids []int64) (map[int64]string, error)
}

// LinkRenderer wraps inner markup into a link to the record for link modes
// other than LinkOriginal.
type LinkRenderer interface {
	RenderLink(ctx context.Context, record *Record, action string, inner string, attrs Attrs) (string, error)
}

type ScriptQueue interface {
	QueueScript(path string)
}

type Translator func(format string, args ...interface{}) string

var Sprintf Translator = fmt.Sprintf

// Options of a single Render call. Wrapper and ItemWrapper disable
// the corresponding element when nil.
type Options struct {
	Wrapper     Attrs
	ItemWrapper Attrs
	Link        Attrs
	Image       Attrs
	Variant     string
	LinkMode    string
	Kind        string
	LazyLoad    bool
	Script      bool
}

func DefaultOptions() *Options {
	return &Options{
		Wrapper:     Attrs{}.With("id", "item-images"),
		ItemWrapper: Attrs{},
		Link:        Attrs{},
		Image:       Attrs{},
		Variant:     SquareThumbnailVariant,
		LinkMode:    LinkOriginal,
		Kind:        KindImage,
		LazyLoad:    true,
		Script:      true,
	}
}
