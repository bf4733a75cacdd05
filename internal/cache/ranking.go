package cache

import "fmt"

// PutRanking replaces the stored front-page ranking. Every id must already
// have been stored with PutStory.
func (d *DB) PutRanking(ids []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM front_page`); err != nil {
		return fmt.Errorf("clearing ranking: %w", err)
	}
	for rank, id := range ids {
		if _, err := tx.Exec(`INSERT INTO front_page (position, story_id) VALUES (?, ?)`, rank, id); err != nil {
			return fmt.Errorf("ranking story %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// LoadRanking returns the story ids of the last stored front page, best first.
func (d *DB) LoadRanking() ([]string, error) {
	rows, err := d.db.Query(`SELECT story_id FROM front_page ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("loading ranking: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning ranking: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
