package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the domain repositories so all queries go through a
// single context-bound handle.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil context yields the raw
// connection, which transaction helpers rely on.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
