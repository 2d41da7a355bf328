package models

import "time"

// RowMeta is the lightweight remote listing used for diffing: one entry per
// remote note row, no payload transfer.
type RowMeta struct {
	ID        string
	UpdatedAt time.Time
	IsDeleted bool
}

// Row shadows a note in the remote relational store. Note is serialized as a
// JSON payload column; id is the upsert conflict key.
type Row struct {
	ID        string
	UserID    string
	Email     string
	UpdatedAt time.Time
	CreatedAt time.Time
	IsDeleted bool
	Note      Note
}
