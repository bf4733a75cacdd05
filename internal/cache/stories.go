package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fragmede/frontpage/internal/model"
)

// PutStory stores the descriptive fields of a story. A story keeps the
// position it had when it was first stored.
func (d *DB) PutStory(s model.Story) error {
	var created int64
	if !s.CreatedAt.IsZero() {
		created = s.CreatedAt.Unix()
	}
	_, err := d.db.Exec(`INSERT INTO stories
		(id, title, author, url, created_unix, points, num_comments, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			url = excluded.url,
			created_unix = excluded.created_unix,
			points = excluded.points,
			num_comments = excluded.num_comments,
			updated_at = excluded.updated_at`,
		s.ID, nullStr(s.Title), nullStr(s.Author), nullStr(s.URL), created,
		s.Points, s.NumComments, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing story %s: %w", s.ID, err)
	}
	return nil
}

// LoadStories returns every stored story with its cached comments, in the
// order the stories were first stored.
func (d *DB) LoadStories() ([]model.Story, error) {
	rows, err := d.db.Query(`SELECT s.id, s.title, s.author, s.url, s.created_unix,
		s.points, s.num_comments, c.tree
		FROM stories s LEFT JOIN story_comments c ON c.story_id = s.id
		ORDER BY s.seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("loading stories: %w", err)
	}
	defer rows.Close()

	var result []model.Story
	for rows.Next() {
		var s model.Story
		var title, author, url, tree sql.NullString
		var created int64
		if err := rows.Scan(&s.ID, &title, &author, &url, &created,
			&s.Points, &s.NumComments, &tree); err != nil {
			return nil, fmt.Errorf("scanning story: %w", err)
		}
		s.Title = title.String
		s.Author = author.String
		s.URL = url.String
		if created > 0 {
			s.CreatedAt = time.Unix(created, 0).UTC()
		}
		s.Comments = []model.Comment{}
		if tree.Valid && tree.String != "" {
			if err := json.Unmarshal([]byte(tree.String), &s.Comments); err != nil {
				return nil, fmt.Errorf("decoding comments of %s: %w", s.ID, err)
			}
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
