package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Seednode/couplebox/games"
)

// SeedQuestions inserts every question whose text is not already in the
// catalog and reports how many were added. Running it twice with the same
// input adds nothing the second time.
func (s *Store) SeedQuestions(ctx context.Context, qs []games.Question) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (category, text, options)
		 SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM questions WHERE text = ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, q := range qs {
		if !q.Category.Valid() {
			return 0, fmt.Errorf("question %q: unknown category %q", q.Text, q.Category)
		}

		options := q.Options
		if options == nil {
			options = []string{}
		}
		encoded, err := json.Marshal(options)
		if err != nil {
			return 0, fmt.Errorf("encode options: %w", err)
		}

		res, err := stmt.ExecContext(ctx, string(q.Category), q.Text, string(encoded), q.Text)
		if err != nil {
			return 0, fmt.Errorf("seed question %q: %w", q.Text, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}

	return added, nil
}

// ListQuestions returns the whole catalog ordered by id.
func (s *Store) ListQuestions(ctx context.Context) ([]games.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT id, category, text, options FROM questions ORDER BY id`,
	)
}

// ListQuestionsByCategory returns the catalog entries tagged c.
func (s *Store) ListQuestionsByCategory(ctx context.Context, c games.Category) ([]games.Question, error) {
	return s.queryQuestions(ctx,
		`SELECT id, category, text, options FROM questions WHERE category = ? ORDER BY id`,
		string(c),
	)
}

// QuestionIDs returns just the ids of the catalog entries tagged c.
func (s *Store) QuestionIDs(ctx context.Context, c games.Category) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM questions WHERE category = ? ORDER BY id`,
		string(c),
	)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", c, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan question id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]games.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	qs := []games.Question{}
	for rows.Next() {
		var (
			q        games.Question
			category string
			options  string
		)
		if err := rows.Scan(&q.ID, &category, &q.Text, &options); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Category = games.Category(category)
		q.Options = []string{}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %d: %w", q.ID, err)
		}
		qs = append(qs, q)
	}

	return qs, rows.Err()
}
