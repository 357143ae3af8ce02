package models

import "time"

// Report flags a note or comment for moderator review
type Report struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"owner" db:"owner_id"`
	Kind        ItemKind  `json:"type" db:"item_kind"`
	ItemID      int64     `json:"item" db:"item_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdDate" db:"created_at"`
}
