package database

import (
	"github.com/asadtechlead/precise-price-print/internal/localstore"
	"github.com/asadtechlead/precise-price-print/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewConnection opens a connection pool using GORM. A postgres DSN selects
// the hosted database; an empty DSN falls back to an embedded sqlite file at
// sqlitePath for local, single-machine deployments.
func NewConnection(dsn, sqlitePath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Client{},
		&model.Product{},
		&model.Service{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.UserSettings{},
		&model.AuditLog{},
		&localstore.Record{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
