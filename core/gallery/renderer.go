package gallery

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Renderer builds HTML galleries from file records.
// Files is required, the rest is optional: without Captions every record
// is titled by its original filename, without Links only LinkOriginal mode works.
type Renderer struct {
	Files     FileStore
	Captions  CaptionStore
	Links     LinkRenderer
	Translate Translator
}

// Render returns a gallery fragment for non-nil records in the order they are passed.
// Nothing is rendered if there are no such records. Options default to DefaultOptions
// when nil. Scripts is notified about the lazy load library when LazyLoad is set.
func (r *Renderer) Render(ctx context.Context, records []*Record, options *Options, scripts ScriptQueue) (string, error) {
	if options == nil {
		options = DefaultOptions()
	}

	records = compact(records)
	if len(records) == 0 {
		return "", nil
	}

	captions, err := r.getCaptions(ctx, records)
	if err != nil {
		return "", errors.Wrap(err, "get captions")
	}

	if options.LazyLoad && scripts != nil {
		scripts.QueueScript(LazyLoadScript)
	}

	w := &writer{
		Renderer:  r,
		options:   options,
		captions:  captions,
		translate: r.Translate,
		sb:        new(strings.Builder),
	}

	if w.translate == nil {
		w.translate = Sprintf
	}

	if options.Wrapper != nil {
		w.sb.WriteString(startTag("div", options.Wrapper))
	}

	for _, record := range records {
		if err := w.writeItem(ctx, record); err != nil {
			return "", errors.Wrapf(err, "render record %d", record.ID)
		}
	}

	if options.Wrapper != nil {
		w.sb.WriteString(endTag("div"))
	}

	if options.LazyLoad && options.Script {
		w.sb.WriteString(bootstrapScript)
	}

	return w.sb.String(), nil
}

func (r *Renderer) getCaptions(ctx context.Context, records []*Record) (map[int64]string, error) {
	if r.Captions == nil {
		return nil, nil
	}

	ids := make([]int64, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for _, record := range records {
		if record.ID == 0 || seen[record.ID] {
			continue
		}

		seen[record.ID] = true
		ids = append(ids, record.ID)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	return r.Captions.FirstCaptions(ctx, ids)
}

func compact(records []*Record) []*Record {
	result := make([]*Record, 0, len(records))
	for _, record := range records {
		if record != nil {
			result = append(result, record)
		}
	}

	return result
}

type writer struct {
	*Renderer
	options   *Options
	captions  map[int64]string
	translate Translator
	sb        *strings.Builder
	images    int
}

func (w *writer) writeItem(ctx context.Context, record *Record) error {
	if w.options.ItemWrapper != nil {
		w.sb.WriteString(startTag("div", w.options.ItemWrapper))
	}

	image, err := w.image(ctx, record)
	if err != nil {
		return err
	}

	switch mode := w.options.LinkMode; mode {
	case LinkOriginal, "":
		if err := w.writeOriginalLink(ctx, record, image); err != nil {
			return err
		}

	default:
		if w.Links == nil {
			return errors.Wrapf(ErrNoLinkRenderer, "link mode %s", mode)
		}

		link, err := w.Links.RenderLink(ctx, record, mode, image, w.options.Link)
		if err != nil {
			return errors.Wrap(err, "render link")
		}

		w.sb.WriteString(link)
	}

	if w.options.ItemWrapper != nil {
		w.sb.WriteString(endTag("div"))
	}

	return nil
}

func (w *writer) title(record *Record) string {
	if caption, ok := w.captions[record.ID]; ok {
		return caption
	}

	return record.OriginalFilename
}

func (w *writer) image(ctx context.Context, record *Record) (string, error) {
	variant := w.options.Variant
	if variant == "" {
		variant = SquareThumbnailVariant
	}

	url, err := w.Files.URL(ctx, record, variant)
	if err != nil {
		return "", errors.Wrapf(err, "get %s url", variant)
	}

	title := w.title(record)
	var attrs Attrs
	if w.options.LazyLoad {
		attrs = Attrs{}.
			With("class", LazyClass).
			With(RealSourceAttr, url).
			With("src", Placeholder).
			With("title", title).
			With("alt", title)
	} else {
		attrs = Attrs{}.
			With("src", url).
			With("alt", title).
			With("title", title).
			Merge(w.options.Image)
	}

	return "<img" + attrs.String() + " />", nil
}

func (w *writer) writeOriginalLink(ctx context.Context, record *Record, image string) error {
	href, err := w.Files.URL(ctx, record, OriginalVariant)
	if err != nil {
		return errors.Wrap(err, "get original url")
	}

	size, err := w.Files.ByteSize(ctx, record)
	if err != nil {
		return errors.Wrap(err, "get size")
	}

	var label string
	if w.options.Kind == KindImage {
		w.images++
		label = w.translate("Image %d", w.images)
	} else {
		label = capitalize(w.Files.Extension(record))
	}

	attrs := Attrs{}.With("href", href).Union(w.options.Link)
	w.sb.WriteString(startTag("a", attrs))
	w.sb.WriteString(image)
	w.sb.WriteString(endTag("a"))

	w.sb.WriteString(startTag("p", nil))
	w.sb.WriteString(startTag("a", attrs))
	w.sb.WriteString(html.EscapeString(label))
	w.sb.WriteString(" [")
	w.sb.WriteString(html.EscapeString(FormatSize(size)))
	w.sb.WriteString("]")
	w.sb.WriteString(endTag("a"))
	w.sb.WriteString(endTag("p"))
	return nil
}
