package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// scoreRepo implements ScoreRepo on the scores table.
type scoreRepo struct {
	db *sql.DB
}

func (r *scoreRepo) Get(ctx context.Context, feature string) (int, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table(scoresTable)).
		Where(entsql.EQ("feature", feature)).
		Query()

	var v int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("get score %q: %w", feature, err)
	}
	return v, true, nil
}

func (r *scoreRepo) Set(ctx context.Context, feature string, value int) error {
	query, args := builder().Insert(scoresTable).
		Columns("feature", "value", "updated_at").
		Values(feature, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("feature"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set score %q: %w", feature, err)
	}
	return nil
}

func (r *scoreRepo) Delete(ctx context.Context, feature string) error {
	query, args := builder().Delete(scoresTable).
		Where(entsql.EQ("feature", feature)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete score %q: %w", feature, err)
	}
	return nil
}

func (r *scoreRepo) List(ctx context.Context) ([]Score, error) {
	query, args := builder().Select("feature", "value", "updated_at").
		From(entsql.Table(scoresTable)).
		OrderBy("feature").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var (
			s  Score
			ts int64
		)
		if err := rows.Scan(&s.Feature, &s.Value, &ts); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		s.UpdatedAt = time.UnixMilli(ts).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
