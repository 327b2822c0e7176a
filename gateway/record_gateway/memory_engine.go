package record_gateway

import (
	"context"
	"fmt"
	"sync"

	"picset/domain"
	"picset/port/record_port"
)

// MemoryRecordEngine implements the record engine in process memory. It
// honors the same protocol as the Postgres engine and is the engine of
// choice for tests and embedded hosts.
type MemoryRecordEngine struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
}

type memoryRecord struct {
	version     int64
	collections map[string]domain.Images
}

func NewMemoryRecordEngine() *MemoryRecordEngine {
	return &MemoryRecordEngine{records: make(map[string]*memoryRecord)}
}

func recordKey(recordType, recordID string) string {
	return recordType + "/" + recordID
}

func (e *MemoryRecordEngine) Fetch(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[recordKey(recordType, recordID)]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return snapshot(recordType, recordID, rec), nil
}

func (e *MemoryRecordEngine) CreateRecord(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := recordKey(recordType, recordID)
	if _, exists := e.records[key]; exists {
		return nil, fmt.Errorf("record %s already exists", key)
	}
	e.records[key] = &memoryRecord{collections: make(map[string]domain.Images)}
	return snapshot(recordType, recordID, e.records[key]), nil
}

// Apply writes the proposed contents under the version check, runs the
// commit actions outside the lock, then folds the result back. The fold is
// guarded by the version this write assigned: if another writer advanced
// the record mid-actions the fold is abandoned as stale rather than
// clobbering the newer write.
func (e *MemoryRecordEngine) Apply(ctx context.Context, write *record_port.CollectionWrite) (int64, error) {
	e.mu.Lock()
	rec, ok := e.records[recordKey(write.RecordType, write.RecordID)]
	if !ok {
		e.mu.Unlock()
		return 0, domain.ErrRecordNotFound
	}
	if rec.version != write.BaseVersion {
		e.mu.Unlock()
		return 0, domain.ErrStaleVersion
	}
	rec.collections[write.Field] = write.Images.Clone()
	rec.version++
	newVersion := rec.version
	e.mu.Unlock()

	images := write.Images
	var actionErr error
	for _, action := range write.Actions {
		next, err := action(ctx, images)
		if err != nil {
			actionErr = err
			images = next
			break
		}
		images = next
	}

	e.mu.Lock()
	if rec.version == newVersion {
		rec.collections[write.Field] = images.Clone()
	}
	e.mu.Unlock()

	if actionErr != nil {
		return newVersion, actionErr
	}
	return newVersion, nil
}

func snapshot(recordType, recordID string, rec *memoryRecord) *domain.ParentRecord {
	collections := make(map[string]domain.Images, len(rec.collections))
	for field, images := range rec.collections {
		collections[field] = images.Clone()
	}
	return &domain.ParentRecord{
		Type:        recordType,
		ID:          recordID,
		Version:     rec.version,
		Collections: collections,
	}
}
