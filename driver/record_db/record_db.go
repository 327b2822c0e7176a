package record_db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"picset/domain"
	"picset/utils/logger"
)

// DBPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RecordDBRepository runs the raw SQL for the records table:
// (record_type, record_id, version bigint, collections jsonb).
type RecordDBRepository struct {
	pool DBPool
}

func NewRecordDBRepository(pool DBPool) *RecordDBRepository {
	return &RecordDBRepository{pool: pool}
}

// InitDBPool connects the pgx pool and verifies the connection.
func InitDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.SafeErrorContext(ctx, "failed to create database pool", "error", err)
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		logger.SafeErrorContext(ctx, "failed to ping database", "error", err)
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.SafeInfoContext(ctx, "connected to database")
	return pool, nil
}

// FetchRecord loads the version and all collection contents for one record.
func (r *RecordDBRepository) FetchRecord(ctx context.Context, recordType, recordID string) (*domain.ParentRecord, error) {
	var version int64
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT version, collections FROM records WHERE record_type = $1 AND record_id = $2`,
		recordType, recordID,
	).Scan(&version, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("fetch record: %w", err)
	}

	collections := make(map[string]domain.Images)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &collections); err != nil {
			return nil, fmt.Errorf("decode collections: %w", err)
		}
	}

	return &domain.ParentRecord{
		Type:        recordType,
		ID:          recordID,
		Version:     version,
		Collections: collections,
	}, nil
}

// InsertRecord provisions a record row at version zero with no collections.
func (r *RecordDBRepository) InsertRecord(ctx context.Context, recordType, recordID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO records (record_type, record_id, version, collections) VALUES ($1, $2, 0, '{}'::jsonb)`,
		recordType, recordID,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// UpdateCollection writes the proposed contents under the optimistic lock
// and increments the version atomically with the write. Zero affected rows
// means the base version is stale.
func (r *RecordDBRepository) UpdateCollection(ctx context.Context, recordType, recordID, field string, images domain.Images, baseVersion int64) (int64, error) {
	payload, err := json.Marshal(images)
	if err != nil {
		return 0, fmt.Errorf("encode collection: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE records
		 SET collections = jsonb_set(collections, ARRAY[$1], $2::jsonb, true),
		     version = version + 1
		 WHERE record_type = $3 AND record_id = $4 AND version = $5`,
		field, payload, recordType, recordID, baseVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("update collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrStaleVersion
	}
	return baseVersion + 1, nil
}

// FoldCollection rewrites the contents after the commit actions ran. The
// fold is the tail of the same logical write: it is guarded by the version
// the write just assigned and does not bump it again.
func (r *RecordDBRepository) FoldCollection(ctx context.Context, recordType, recordID, field string, images domain.Images, version int64) error {
	payload, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE records
		 SET collections = jsonb_set(collections, ARRAY[$1], $2::jsonb, true)
		 WHERE record_type = $3 AND record_id = $4 AND version = $5`,
		field, payload, recordType, recordID, version,
	)
	if err != nil {
		return fmt.Errorf("fold collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStaleVersion
	}
	return nil
}
