package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fragmede/frontpage/internal/model"
)

// PutComments stores the full comment tree of a story, replacing any previous
// tree. Stories that were never stored get an empty row first.
func (d *DB) PutComments(storyID string, comments []model.Comment) error {
	tree, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encoding comments of %s: %w", storyID, err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	if _, err := tx.Exec(`INSERT OR IGNORE INTO stories (id, updated_at) VALUES (?, ?)`,
		storyID, now); err != nil {
		return fmt.Errorf("storing story %s: %w", storyID, err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO story_comments (story_id, tree, fetched_at)
		VALUES (?, ?, ?)`, storyID, string(tree), now); err != nil {
		return fmt.Errorf("storing comments of %s: %w", storyID, err)
	}
	return tx.Commit()
}

// GetComments returns the cached comment tree of a story and when it was
// fetched. Returns nil comments on cache miss.
func (d *DB) GetComments(storyID string) ([]model.Comment, time.Time, error) {
	row := d.db.QueryRow(`SELECT tree, fetched_at FROM story_comments WHERE story_id = ?`, storyID)

	var tree string
	var fetchedAt int64
	err := row.Scan(&tree, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var comments []model.Comment
	if err := json.Unmarshal([]byte(tree), &comments); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding comments of %s: %w", storyID, err)
	}
	return comments, time.Unix(fetchedAt, 0), nil
}
