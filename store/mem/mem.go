package mem

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/samber/lo"
)

func New(customizers ...func(*Options)) (store.Store, error) {
	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &memStore{
		options: options,
		entries: make(map[string]memEntry),
	}, nil
}

func NewOptions() Options {
	return Options{
		Common: store.NewOptions(),
	}
}

type Options struct {
	Common store.Options // Common store options
}

func (o Options) Validate() error {
	return o.Common.Validate()
}

// memEntry holds an encoded diagram, so that a stored diagram is not affected by later modifications of the caller.
type memEntry struct {
	record   store.Record
	document []byte
}

type memStore struct {
	mutex   sync.RWMutex
	options Options
	entries map[string]memEntry
}

func (s *memStore) Save(_ context.Context, cmd store.SaveCmd) (store.Record, error) {
	record, err := store.Prepare(cmd, s.options.Common)
	if err != nil {
		return store.Record{}, err
	}

	document, err := codec.EncodeJSON(cmd.Diagram)
	if err != nil {
		return store.Record{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, ok := s.entries[record.DiagramId]
	if cmd.Revision != 0 && cmd.Revision != existing.record.Revision {
		return store.Record{}, store.NewConflictError(record.DiagramId, cmd.Revision, existing.record.Revision)
	}

	record.Revision = 1
	if ok {
		record.Revision = existing.record.Revision + 1
	}

	// must be UTC and truncated to millis, like the pg implementation
	record.SavedAt = time.Now().UTC().Truncate(time.Millisecond)

	s.entries[record.DiagramId] = memEntry{record: record, document: document}
	return record, nil
}

func (s *memStore) Load(_ context.Context, diagramId string) (*model.Diagram, store.Record, error) {
	s.mutex.RLock()
	entry, ok := s.entries[diagramId]
	s.mutex.RUnlock()

	if !ok {
		return nil, store.Record{}, store.NewNotFoundError("failed to load diagram", diagramId)
	}

	d, err := codec.DecodeJSON(entry.document)
	if err != nil {
		return nil, store.Record{}, err
	}
	return d, entry.record, nil
}

func (s *memStore) Query(_ context.Context, criteria store.Criteria) ([]store.Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	records := make([]store.Record, 0, len(s.entries))
	for _, entry := range s.entries {
		records = append(records, entry.record)
	}
	s.mutex.RUnlock()

	name := strings.ToLower(criteria.Name)

	records = lo.Filter(records, func(record store.Record, _ int) bool {
		if criteria.DiagramId != "" && record.DiagramId != criteria.DiagramId {
			return false
		}
		if name != "" && !strings.Contains(strings.ToLower(record.Name), name) {
			return false
		}
		if criteria.Version != "" && record.Version != criteria.Version {
			return false
		}
		if criteria.HasErrors != nil && *criteria.HasErrors != (record.Errors != 0) {
			return false
		}
		return true
	})

	slices.SortFunc(records, func(a store.Record, b store.Record) int {
		return strings.Compare(a.DiagramId, b.DiagramId)
	})

	limit := criteria.Limit
	if limit <= 0 {
		limit = s.options.Common.DefaultQueryLimit
	}

	offset := max(criteria.Offset, 0)
	if offset >= len(records) {
		return []store.Record{}, nil
	}

	return records[offset:min(offset+limit, len(records))], nil
}

func (s *memStore) Delete(_ context.Context, diagramId string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.entries[diagramId]; !ok {
		return store.NewNotFoundError("failed to delete diagram", diagramId)
	}

	delete(s.entries, diagramId)
	return nil
}

func (s *memStore) Shutdown() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	clear(s.entries)
}
