package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KVRepo is a small key-value table for learner state blobs.
type KVRepo struct {
	db *sql.DB
}

// Get returns the value stored under key. found is false when the key
// does not exist.
func (r *KVRepo) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table("kv")).
		Where(entsql.EQ("key", key)).
		Query()

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query, args := builder().Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete("kv").
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in ascending order.
func (r *KVRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	b := builder()
	sel := b.Select("key").From(b.Table("kv")).OrderBy("key")
	if prefix != "" {
		sel = sel.Where(entsql.HasPrefix("key", prefix))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DeletePrefix removes every key starting with prefix and returns how
// many were removed.
func (r *KVRepo) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	del := builder().Delete("kv")
	if prefix != "" {
		del = del.Where(entsql.HasPrefix("key", prefix))
	}
	query, args := del.Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete prefix %q: %w", prefix, err)
	}
	return res.RowsAffected()
}
