package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadFromPostgres reads a catalog snapshot from the catalog_venues table:
//
//	CREATE TABLE catalog_venues (
//	  position     INTEGER PRIMARY KEY,
//	  id           TEXT NOT NULL UNIQUE,
//	  name         TEXT NOT NULL,
//	  image        TEXT,
//	  rating       DOUBLE PRECISION,
//	  review_count INTEGER,
//	  address      TEXT,
//	  description  TEXT,
//	  category     TEXT,
//	  reviews      JSONB
//	);
//
// Rows are returned ordered by position, which is what positional image
// fallback indexes into.
func LoadFromPostgres(ctx context.Context, db Querier) ([]Entry, error) {
	const query = `
		SELECT id, name,
		       COALESCE(image, ''), COALESCE(rating, 0), COALESCE(review_count, 0),
		       COALESCE(address, ''), COALESCE(description, ''), COALESCE(category, ''),
		       COALESCE(reviews, '[]'::jsonb)
		FROM catalog_venues
		ORDER BY position
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog_venues: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var (
			e       Entry
			reviews []byte
		)
		if err := row.Scan(
			&e.ID,
			&e.Name,
			&e.Image,
			&e.Rating,
			&e.ReviewCount,
			&e.Address,
			&e.Description,
			&e.Category,
			&reviews,
		); err != nil {
			return Entry{}, err
		}
		if err := json.Unmarshal(reviews, &e.Reviews); err != nil {
			return Entry{}, fmt.Errorf("decode reviews for venue %s: %w", e.ID, err)
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan catalog_venues: %w", err)
	}

	return entries, nil
}
