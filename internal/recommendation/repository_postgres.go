package recommendation

import (
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresStore persists the snapshot as rows in a `snapshot` table, newest
// row wins. Useful when the service runs somewhere without a writable disk.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load() (*StoredSnapshot, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM snapshot ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(payload)
}

func (s *PostgresStore) Save(snap *StoredSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO snapshot (payload, created_at) VALUES ($1, $2)`,
		b, time.Now().UTC().Format(time.RFC3339))
	return err
}
