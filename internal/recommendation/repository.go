package recommendation

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/zid-upsell/backend/internal/order"
	"github.com/zid-upsell/backend/internal/product"
)

// StoredSnapshot is the persisted cache shape: the page of products and
// orders as last fetched from the Zid API.
type StoredSnapshot struct {
	Products []product.Product `json:"products"`
	Orders   []order.Order     `json:"orders"`
}

// ErrInvalidSnapshot is returned when a persisted snapshot exists but does
// not carry both a products and an orders collection.
var ErrInvalidSnapshot = errors.New("snapshot missing products or orders")

// SnapshotStore persists a snapshot between process starts. Load errors are
// treated by the manager as "must fetch"; Save is best-effort.
type SnapshotStore interface {
	Load() (*StoredSnapshot, error)
	Save(snap *StoredSnapshot) error
}

// FileStore persists the snapshot as a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*StoredSnapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(b)
}

func (s *FileStore) Save(snap *StoredSnapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}

// decodeSnapshot parses a persisted snapshot, requiring both collections to
// be present. The business data inside is not re-validated.
func decodeSnapshot(b []byte) (*StoredSnapshot, error) {
	var raw struct {
		Products *[]product.Product `json:"products"`
		Orders   *[]order.Order     `json:"orders"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	if raw.Products == nil || raw.Orders == nil {
		return nil, ErrInvalidSnapshot
	}
	return &StoredSnapshot{Products: *raw.Products, Orders: *raw.Orders}, nil
}
