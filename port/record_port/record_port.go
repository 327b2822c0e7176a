package record_port

import (
	"context"

	"picset/domain"
)

// CommitAction performs the deferred storage I/O for one staged mutation
// and folds its result into the just-written collection contents. Actions
// run strictly after the field write is durable, in staging order.
type CommitAction func(ctx context.Context, images domain.Images) (domain.Images, error)

// CollectionWrite is one optimistic-locked collection field write plus its
// deferred commit actions.
type CollectionWrite struct {
	RecordType  string
	RecordID    string
	Field       string
	Images      domain.Images
	BaseVersion int64
	Actions     []CommitAction
}

// RecordEngine is the persistence collaborator. It guarantees: the field
// write and version increment are atomic and rejected with ErrStaleVersion
// on a version mismatch; commit actions run only after the write is
// durable; the folded result is written back to the column. An action
// failure surfaces through the returned error but never rolls back the
// field write.
type RecordEngine interface {
	Fetch(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error)
	CreateRecord(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error)
	Apply(ctx context.Context, write *CollectionWrite) (int64, error)
}
