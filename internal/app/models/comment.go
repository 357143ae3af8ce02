package models

import "time"

// Comment is a short text reply on a note
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	AccountID   int64     `json:"owner" db:"account_id"`
	NoteID      int64     `json:"note" db:"note_id"`
	Description string    `json:"body" db:"description"`
	CreatedAt   time.Time `json:"createdDate" db:"created_at"`
	TotalLikes  int64     `json:"totalLikes" db:"total_likes"`
}
