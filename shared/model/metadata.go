package model

import (
	"shop/shared/timezone"
	"time"
)

// Metadata holds the row timestamps every stored record carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

// NewMetadata stamps a record being created now.
func NewMetadata() Metadata {
	now := timezone.Now()

	return Metadata{CreatedAt: now, ModifiedAt: now}
}
