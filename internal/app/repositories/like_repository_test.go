package repositories

import (
	"strings"
	"testing"

	"github.com/pucknotes/server/internal/app/models"
)

func normalizeSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestLikeStatementIsSingleGuardedStatement(t *testing.T) {
	tests := []struct {
		name  string
		kind  models.ItemKind
		table string
	}{
		{"note", models.KindNote, "notes"},
		{"comment", models.KindComment, "comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := itemTable(tt.kind)
			if err != nil || table != tt.table {
				t.Fatalf("itemTable(%s) = %q, %v", tt.kind, table, err)
			}
			sql := normalizeSQL(likeStatement(table))

			wantParts := []string{
				"WITH item AS ( SELECT id FROM " + tt.table + " WHERE id = $3 FOR UPDATE )",
				"INSERT INTO likes (account_id, item_kind, item_id) SELECT $1::BIGINT, $2::VARCHAR, id FROM item",
				"ON CONFLICT ON CONSTRAINT likes_account_item_key DO NOTHING RETURNING item_id",
				"UPDATE " + tt.table + " SET total_likes = total_likes + 1 WHERE id IN (SELECT item_id FROM ins)",
			}
			for _, part := range wantParts {
				if !strings.Contains(sql, part) {
					t.Errorf("like statement missing %q\n got: %s", part, sql)
				}
			}
			if strings.Contains(sql, "VALUES") {
				t.Errorf("like must insert only when the item row exists: %s", sql)
			}
			if strings.Count(sql, ";") > 0 {
				t.Errorf("like must be a single statement: %s", sql)
			}
		})
	}
}

func TestUnlikeStatementDecrementsOnlyOnDelete(t *testing.T) {
	sql := normalizeSQL(unlikeStatement("comments"))
	want := "WITH del AS ( DELETE FROM likes WHERE account_id = $1 AND item_kind = $2 AND item_id = $3 RETURNING item_id ) " +
		"UPDATE comments SET total_likes = total_likes - 1 WHERE id IN (SELECT item_id FROM del)"
	if sql != want {
		t.Errorf("unlike statement\n got: %s\nwant: %s", sql, want)
	}
}

func TestItemTableRejectsUnknownKind(t *testing.T) {
	if _, err := itemTable(models.ItemKind("post")); err == nil {
		t.Error("expected error for unknown item kind")
	}
}
