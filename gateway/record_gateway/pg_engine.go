package record_gateway

import (
	"context"

	"picset/domain"
	"picset/driver/record_db"
	"picset/port/record_port"
	"picset/utils/logger"
)

// PgRecordEngine implements the record engine over Postgres. The field
// write is durable before any commit action runs; an action failure leaves
// the write standing and surfaces through the returned error.
type PgRecordEngine struct {
	repo *record_db.RecordDBRepository
}

func NewPgRecordEngine(repo *record_db.RecordDBRepository) *PgRecordEngine {
	return &PgRecordEngine{repo: repo}
}

func (e *PgRecordEngine) Fetch(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error) {
	return e.repo.FetchRecord(ctx, recordType, recordID)
}

func (e *PgRecordEngine) CreateRecord(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error) {
	if err := e.repo.InsertRecord(ctx, recordType, recordID); err != nil {
		return nil, err
	}
	return &domain.ParentRecord{
		Type:        recordType,
		ID:          recordID,
		Version:     0,
		Collections: make(map[string]domain.Images),
	}, nil
}

// Apply runs the deferred-commit protocol: optimistic-locked field write,
// then the commit actions in staging order, then the fold-back write. When
// an action fails mid-sequence the results of the earlier actions are still
// folded back so committed uploads stay visible in the column.
func (e *PgRecordEngine) Apply(ctx context.Context, write *record_port.CollectionWrite) (int64, error) {
	newVersion, err := e.repo.UpdateCollection(ctx, write.RecordType, write.RecordID, write.Field, write.Images, write.BaseVersion)
	if err != nil {
		return 0, err
	}

	images := write.Images
	for _, action := range write.Actions {
		next, actionErr := action(ctx, images)
		if actionErr != nil {
			if foldErr := e.repo.FoldCollection(ctx, write.RecordType, write.RecordID, write.Field, next, newVersion); foldErr != nil {
				logger.SafeErrorContext(ctx, "failed to fold partial commit results",
					"record_type", write.RecordType, "record_id", write.RecordID, "field", write.Field, "error", foldErr)
			}
			return newVersion, actionErr
		}
		images = next
	}

	if err := e.repo.FoldCollection(ctx, write.RecordType, write.RecordID, write.Field, images, newVersion); err != nil {
		return newVersion, err
	}
	return newVersion, nil
}
