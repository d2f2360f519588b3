package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"imagesgallery/core/files"
	"imagesgallery/core/gallery"
	"imagesgallery/metrics"
	"imagesgallery/server"
)

type testItems struct {
	records map[int64][]*gallery.Record
	err     error
	panic   bool
}

func (s *testItems) ItemRecords(ctx context.Context, itemID int64) ([]*gallery.Record, error) {
	if s.panic {
		panic("storage is broken")
	}

	return s.records[itemID], s.err
}

const notFound = "<html>custom 404</html>"

func newHandler(items *testItems) *server.Handler {
	return &server.Handler{
		Items:    items,
		Renderer: &gallery.Renderer{Files: &files.WebStore{BaseURL: "/files"}},
		Options:  gallery.DefaultOptions(),
		Assets:   "/javascripts",
		NotFound: []byte(notFound),
	}
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func testRecords() map[int64][]*gallery.Record {
	return map[int64][]*gallery.Record{
		10: {
			{ID: 1, Filename: "a.jpg", OriginalFilename: "a.jpg", Size: 1000, HasDerivative: true},
			{ID: 2, Filename: "b.jpg", OriginalFilename: "b.jpg", Size: 2000, HasDerivative: true},
		},
	}
}

func TestHandler_Gallery(t *testing.T) {
	handler := newHandler(&testItems{records: testRecords()})
	resp := get(handler, "/gallery?item=10")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
	assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))

	body := resp.Body.String()
	assert.Contains(t, body, "<title>Item #10</title>")
	assert.Contains(t, body, `<div id="item-images">`)
	assert.Contains(t, body, `data-original="/files/square_thumbnails/a.jpg"`)
	assert.Contains(t, body, `data-original="/files/square_thumbnails/b.jpg"`)

	jquery := strings.Index(body, `<script type="text/javascript" src="/javascripts/vendor/jquery.js"></script>`)
	lazyload := strings.Index(body, `<script type="text/javascript" src="/javascripts/vendor/jquery.lazyload.js"></script>`)
	assert.True(t, jquery > 0)
	assert.True(t, lazyload > jquery)
	assert.True(t, strings.HasSuffix(body, "</html>\n"))
}

func TestHandler_NoScriptsWithoutLazyLoad(t *testing.T) {
	handler := newHandler(&testItems{records: testRecords()})
	handler.Options.LazyLoad = false
	resp := get(handler, "/gallery?item=10")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "<script")
}

func TestHandler_EmptyItem(t *testing.T) {
	handler := newHandler(&testItems{records: testRecords()})
	resp := get(handler, "/gallery?item=11")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "item-images")
}

func TestHandler_NotFound(t *testing.T) {
	for name, items := range map[string]*testItems{
		"storage error": {err: errors.New("connection refused")},
		"panic":         {panic: true},
	} {
		t.Run(name, func(t *testing.T) {
			resp := get(newHandler(items), "/gallery?item=10")
			assert.Equal(t, http.StatusNotFound, resp.Code)
			assert.Equal(t, notFound, resp.Body.String())
		})
	}

	for _, target := range []string{"/gallery", "/gallery?item=abc", "/gallery?item=-1"} {
		resp := get(newHandler(&testItems{records: testRecords()}), target)
		assert.Equal(t, http.StatusNotFound, resp.Code, target)
		assert.Equal(t, notFound, resp.Body.String(), target)
	}

	handler := newHandler(&testItems{records: testRecords()})
	handler.NotFound = nil
	handler.Options.LinkMode = "show"
	resp := get(handler, "/gallery?item=10")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, server.DefaultNotFound, resp.Body.String())
}

type testClock struct {
	now  time.Time
	step time.Duration
}

func (c *testClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func TestHandler_Timer(t *testing.T) {
	handler := newHandler(&testItems{records: testRecords()})
	handler.Timer = true
	handler.Clock = &testClock{now: time.Unix(1600000000, 0), step: 1500 * time.Millisecond}

	resp := get(handler, "/gallery?item=10")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasSuffix(resp.Body.String(), "</html>\n1.500000"))

	resp = get(handler, "/gallery?item=abc")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, notFound+"1.500000", resp.Body.String())
}

func TestHandler_Metrics(t *testing.T) {
	registry := metrics.NewPrometheus()
	handler := newHandler(&testItems{records: testRecords()})
	handler.Metrics = registry.WithPrefix("gallery")
	mux := server.NewMux(handler, registry.Handler())

	assert.Equal(t, http.StatusOK, get(mux, "/gallery?item=10").Code)
	assert.Equal(t, http.StatusNotFound, get(mux, "/gallery?item=x").Code)

	resp := get(mux, "/metrics")
	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `gallery_requests{status="ok"} 1`)
	assert.Contains(t, body, `gallery_requests{status="not_found"} 1`)
	assert.Contains(t, body, `gallery_records 2`)
	assert.Contains(t, body, `gallery_in_flight 0`)
	assert.Contains(t, body, `gallery_duration_seconds_count 2`)
}
