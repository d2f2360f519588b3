package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"imagesgallery/core/gallery"
	"imagesgallery/metrics"
)

var ErrInvalidItem = errors.New("invalid item")

type ItemStorage interface {
	ItemRecords(ctx context.Context, itemID int64) ([]*gallery.Record, error)
}

type Renderer interface {
	Render(ctx context.Context, records []*gallery.Record, options *gallery.Options, scripts gallery.ScriptQueue) (string, error)
}

// Handler serves item gallery pages at ?item=ID.
// Any failure is logged and answered with the NotFound page.
// With Timer set the elapsed seconds are appended to every response body.
type Handler struct {
	Items    ItemStorage
	Renderer Renderer
	Options  *gallery.Options
	Assets   string
	NotFound []byte
	Timer    bool
	Metrics  metrics.Registry
	Clock    flu.Clock
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	registry := h.Metrics
	if registry == nil {
		registry = metrics.Dummy
	}

	inFlight := registry.Gauge("in_flight", nil)
	inFlight.Inc()
	defer inFlight.Dec()

	requestID := newRequestID()
	ctx := r.Context()
	log := logrus.WithContext(ctx).WithFields(logrus.Fields{
		"request": requestID,
		"query":   r.URL.RawQuery,
	})

	w.Header().Set("X-Request-Id", requestID)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	status := "ok"
	body, records, err := h.serve(ctx, r)
	if err != nil {
		status = "not_found"
		log.Warnf("serve gallery: %s", err)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(h.notFound())
	} else {
		log.WithField("records", records).Debugf("served gallery")
		registry.Counter("records", nil).Add(float64(records))
		_, _ = w.Write(body)
	}

	elapsed := h.now().Sub(start)
	if h.Timer {
		_, _ = fmt.Fprintf(w, "%f", elapsed.Seconds())
	}

	registry.Counter("requests", metrics.Labels{"status": status}).Inc()
	registry.Histogram("duration_seconds", nil, nil).Observe(elapsed.Seconds())
}

func (h *Handler) serve(ctx context.Context, r *http.Request) (body []byte, records int, err error) {
	defer func() {
		if r := recover(); r != nil {
			body, records, err = nil, 0, errors.Errorf("panic: %v", r)
		}
	}()

	itemID, err := strconv.ParseInt(r.URL.Query().Get("item"), 10, 64)
	if err != nil || itemID <= 0 {
		return nil, 0, errors.Wrapf(ErrInvalidItem, "%q", r.URL.Query().Get("item"))
	}

	items, err := h.Items.ItemRecords(ctx, itemID)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "get item %d records", itemID)
	}

	queue := new(scripts)
	fragment, err := h.Renderer.Render(ctx, items, h.Options, queue)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "render item %d", itemID)
	}

	buf := new(bytes.Buffer)
	if err := page.Execute(buf, pageData{
		Title:   fmt.Sprintf("Item #%d", itemID),
		Assets:  h.Assets,
		Scripts: *queue,
		Gallery: template.HTML(fragment),
	}); err != nil {
		return nil, 0, errors.Wrap(err, "execute page template")
	}

	return buf.Bytes(), len(items), nil
}

func (h *Handler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}

	return h.Clock.Now()
}

func (h *Handler) notFound() []byte {
	if len(h.NotFound) == 0 {
		return []byte(DefaultNotFound)
	}

	return h.NotFound
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}

	return id.String()
}
