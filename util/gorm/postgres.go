package gorm

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DefaultConfig = &gorm.Config{Logger: LogrusLogger}

// NewPostgres opens a gorm connection on top of a lib/pq database handle.
func NewPostgres(dsn string) (*gorm.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), DefaultConfig)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the underlying database handle.
func Close(db *gorm.DB) error {
	conn, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get connection")
	}

	return conn.Close()
}
