package models

import "time"

// BagSize is a named size option offered for one bag type.
type BagSize struct {
	ID        string    `db:"id" json:"id"`
	SizeName  string    `db:"size_name" json:"size_name"`
	BagType   string    `db:"bag_type" json:"bag_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
