package acoustic

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrTemplateNotFound is returned when a store holds no template for a label.
var ErrTemplateNotFound = errors.New("acoustic: template not found")

// Store persists trained templates between the training and testing passes.
type Store interface {
	// Save writes t, replacing any template with the same label.
	Save(ctx context.Context, t *Template) error

	// Load reads the template for label. Returns ErrTemplateNotFound if absent.
	Load(ctx context.Context, label string) (*Template, error)
}

// LoadSet loads the templates for labels into a set that keeps the given
// order. Labels that fail to load are skipped; the returned error joins
// their causes. The set is nil only when nothing loaded.
func LoadSet(ctx context.Context, s Store, labels []string) (*TemplateSet, error) {
	var (
		loaded []*Template
		errs   []error
	)
	for _, label := range labels {
		t, err := s.Load(ctx, label)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %q: %w", label, err))
			continue
		}
		loaded = append(loaded, t)
	}
	if len(loaded) == 0 {
		if len(errs) == 0 {
			return nil, errors.New("acoustic: no labels to load")
		}
		return nil, errors.Join(errs...)
	}
	set, err := NewTemplateSet(loaded...)
	if err != nil {
		return nil, err
	}
	return set, errors.Join(errs...)
}

// record is the msgpack wire form of a Template.
type record struct {
	Label string      `msgpack:"label"`
	Means [][]float64 `msgpack:"means"`
	Count int         `msgpack:"count"`
}

func encodeTemplate(t *Template) ([]byte, error) {
	return msgpack.Marshal(record{Label: t.label, Means: t.means, Count: t.count})
}

func decodeTemplate(data []byte) (*Template, error) {
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return newTemplate(rec.Label, rec.Means, rec.Count)
}

// MemoryStore is an in-memory Store. It keeps encoded copies, so stored
// templates can never alias caller data. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, t *Template) error {
	b, err := encodeTemplate(t)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[t.label] = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, label string) (*Template, error) {
	m.mu.RLock()
	b, ok := m.data[label]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return decodeTemplate(b)
}
