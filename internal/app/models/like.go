package models

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind is the closed set of things that can be liked or reported
type ItemKind string

const (
	KindNote    ItemKind = "note"
	KindComment ItemKind = "comment"
)

// ParseItemKind accepts the kind names case-insensitively
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindNote:
		return KindNote, nil
	case KindComment:
		return KindComment, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", s)
	}
}

// Like is the membership record behind an item's like counter
type Like struct {
	AccountID int64     `db:"account_id"`
	Kind      ItemKind  `db:"item_kind"`
	ItemID    int64     `db:"item_id"`
	CreatedAt time.Time `db:"created_at"`
}
