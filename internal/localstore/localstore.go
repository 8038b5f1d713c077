// Package localstore is the guest-mode fallback persistence: a key-value
// store of one serialized JSON document per logical collection, for devices
// using the app without an account. No schema versioning.
package localstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownCollection is returned for collection names outside the fixed set.
var ErrUnknownCollection = errors.New("unknown collection")

// Collections the store accepts.
const (
	CollectionClients  = "clients"
	CollectionProducts = "products"
	CollectionServices = "services"
	CollectionInvoices = "invoices"
	CollectionCurrency = "currency"
)

var validCollections = map[string]bool{
	CollectionClients:  true,
	CollectionProducts: true,
	CollectionServices: true,
	CollectionInvoices: true,
	CollectionCurrency: true,
}

// Record is one collection blob, keyed by device so separate guest devices
// do not clobber each other.
type Record struct {
	DeviceID   string    `gorm:"type:varchar(64);primaryKey" json:"device_id"`
	Collection string    `gorm:"type:varchar(20);primaryKey" json:"collection"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store reads and writes collection blobs.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the raw JSON payload for a collection, or an empty string when
// nothing has been stored yet.
func (s *Store) Get(ctx context.Context, deviceID, collection string) (string, error) {
	if !validCollections[collection] {
		return "", ErrUnknownCollection
	}
	var record Record
	err := s.db.WithContext(ctx).
		First(&record, "device_id = ? AND collection = ?", deviceID, collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return record.Payload, nil
}

// Put overwrites the collection payload.
func (s *Store) Put(ctx context.Context, deviceID, collection, payload string) error {
	if !validCollections[collection] {
		return ErrUnknownCollection
	}
	record := Record{DeviceID: deviceID, Collection: collection, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "collection"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}
