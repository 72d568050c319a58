package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-classroom/internal/db"
)

// SQLStore keeps items in the local_storage table created by db.Open.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ ItemStore = (*SQLStore)(nil)

func NewSQLStore(h *sql.DB, driver db.Driver) *SQLStore {
	return &SQLStore{db: sqlx.NewDb(h, driver.DriverName()), now: time.Now}
}

func (s *SQLStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.GetContext(ctx, &v,
		s.db.Rebind(`SELECT item_value FROM local_storage WHERE item_key = ?`), key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrapf(err, "get item %q", key)
	}
	return v, true, nil
}

func (s *SQLStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO local_storage (item_key, item_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (item_key) DO UPDATE SET
		  item_value = excluded.item_value,
		  updated_at = excluded.updated_at`),
		key, value, s.now().Unix())
	return errors.Wrapf(err, "set item %q", key)
}

func (s *SQLStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM local_storage WHERE item_key = ?`), key)
	return errors.Wrapf(err, "remove item %q", key)
}
