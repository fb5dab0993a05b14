package persistence

import (
	"context"
	"database/sql"
	stderrors "errors"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// SQLiteRepository는 SQLite 기반의 ReconcileHistoryRepository 구현체입니다.
// 조정 패스 이력을 호스트 로컬 파일에 저장합니다.
type SQLiteRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewSQLiteRepository는 새로운 SQLiteRepository를 생성합니다
func NewSQLiteRepository(db *sql.DB, logger *logrus.Logger) *SQLiteRepository {
	return &SQLiteRepository{
		db:     db,
		logger: logger,
	}
}

// Initialize는 이력 테이블을 준비합니다
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reconcile_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			network_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error_message TEXT,
			completed_at TIMESTAMP NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errors.NewSystemError("이력 테이블 생성 실패", err)
	}

	return nil
}

// SaveRecord는 패스 결과 한 건을 저장합니다
func (r *SQLiteRepository) SaveRecord(ctx context.Context, record entities.ReconcileRecord) error {
	query := `
		INSERT INTO reconcile_history (kind, network_id, outcome, error_message, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		string(record.Kind),
		record.NetworkID,
		string(record.Outcome),
		record.ErrorMessage,
		record.CompletedAt,
	)
	if err != nil {
		return errors.NewSystemError("조정 이력 저장 실패", err)
	}

	r.logger.WithFields(logrus.Fields{
		"kind":    record.Kind,
		"outcome": record.Outcome,
	}).Debug("조정 이력 저장 완료")

	return nil
}

// GetLatestRecord는 특정 종류의 가장 최근 패스 결과를 조회합니다
func (r *SQLiteRepository) GetLatestRecord(ctx context.Context, kind entities.NetworkKind) (*entities.ReconcileRecord, error) {
	query := `
		SELECT id, kind, network_id, outcome, error_message, completed_at
		FROM reconcile_history
		WHERE kind = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT 1
	`

	var record entities.ReconcileRecord
	var kindValue, outcome string
	var errorMessage sql.NullString

	err := r.db.QueryRowContext(ctx, query, string(kind)).Scan(
		&record.ID,
		&kindValue,
		&record.NetworkID,
		&outcome,
		&errorMessage,
		&record.CompletedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("조정 이력이 없음")
		}
		return nil, errors.NewSystemError("조정 이력 조회 실패", err)
	}

	record.Kind = entities.NetworkKind(kindValue)
	record.Outcome = entities.ReconcileOutcome(outcome)
	if errorMessage.Valid {
		record.ErrorMessage = errorMessage.String
	}

	return &record, nil
}

// 컴파일 타임 인터페이스 구현 확인
var _ interfaces.ReconcileHistoryRepository = (*SQLiteRepository)(nil)
