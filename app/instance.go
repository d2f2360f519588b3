package app

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"imagesgallery/core/gallery"
	"imagesgallery/core/storage"
	"imagesgallery/metrics"
	"imagesgallery/server"
	gormutil "imagesgallery/util/gorm"
)

// Instance lazily creates and caches application components.
type Instance struct {
	Config *Config

	db       *gorm.DB
	storage  *storage.SQLStorage
	renderer *gallery.Renderer
	metrics  *metrics.Prometheus
	handler  *server.Handler
}

func Create(config *Config) *Instance {
	return &Instance{Config: config}
}

func (app *Instance) GetDatabase() (*gorm.DB, error) {
	if app.db != nil {
		return app.db, nil
	}

	if app.Config.Database == "" {
		return nil, errors.New("database is not configured")
	}

	db, err := gormutil.NewPostgres(app.Config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	app.db = db
	return db, nil
}

func (app *Instance) GetStorage(ctx context.Context) (*storage.SQLStorage, error) {
	if app.storage != nil {
		return app.storage, nil
	}

	db, err := app.GetDatabase()
	if err != nil {
		return nil, err
	}

	store := (*storage.SQLStorage)(db)
	if err := store.Init(ctx); err != nil {
		return nil, errors.Wrap(err, "init storage")
	}

	app.storage = store
	return store, nil
}

func (app *Instance) GetRenderer(ctx context.Context) (*gallery.Renderer, error) {
	if app.renderer != nil {
		return app.renderer, nil
	}

	store, err := app.GetStorage(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get storage")
	}

	translate, err := app.Config.Translator()
	if err != nil {
		return nil, errors.Wrap(err, "create translator")
	}

	app.renderer = &gallery.Renderer{
		Files:     app.Config.FileStore(),
		Captions:  app.Config.CaptionStore(store),
		Links:     app.Config.LinkRenderer(),
		Translate: translate,
	}

	return app.renderer, nil
}

func (app *Instance) GetMetrics() *metrics.Prometheus {
	if app.metrics == nil {
		registry := metrics.NewPrometheus()
		app.metrics = &registry
	}

	return app.metrics
}

func (app *Instance) GetHandler(ctx context.Context) (*server.Handler, error) {
	if app.handler != nil {
		return app.handler, nil
	}

	store, err := app.GetStorage(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get storage")
	}

	renderer, err := app.GetRenderer(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get renderer")
	}

	var notFound []byte
	if path := app.Config.Server.NotFound; path != "" {
		notFound, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read not found page %s", path)
		}
	}

	app.handler = &server.Handler{
		Items:    store,
		Renderer: renderer,
		Options:  app.Config.Gallery.Options(),
		Assets:   app.Config.Server.Assets,
		NotFound: notFound,
		Timer:    app.Config.Debug.Timer,
		Metrics:  app.GetMetrics().WithPrefix("gallery"),
	}

	return app.handler, nil
}

func (app *Instance) Close() error {
	if app.db == nil {
		return nil
	}

	return gormutil.Close(app.db)
}
