package server

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	GalleryPath = "/gallery"
	MetricsPath = "/metrics"
)

func NewMux(gallery, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(GalleryPath, gallery)
	if metrics != nil {
		mux.Handle(MetricsPath, metrics)
	}

	return mux
}

// ListenAndServe runs the server until the context is done.
func ListenAndServe(ctx context.Context, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logrus.WithField("address", address).Infof("listening")

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen and serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	logrus.Infof("server stopped")
	return nil
}
