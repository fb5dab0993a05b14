package interfaces

import (
	"context"
	"detnet-agent/internal/domain/entities"
)

// ReconcileHistoryRepository는 조정 패스 이력을 저장하는 인터페이스입니다
type ReconcileHistoryRepository interface {
	// SaveRecord는 패스 결과 한 건을 저장합니다
	SaveRecord(ctx context.Context, record entities.ReconcileRecord) error

	// GetLatestRecord는 특정 종류의 가장 최근 패스 결과를 조회합니다.
	// 이력이 없으면 NotFound 도메인 에러를 반환합니다.
	GetLatestRecord(ctx context.Context, kind entities.NetworkKind) (*entities.ReconcileRecord, error)
}
