package interfaces

import (
	"detnet-agent/internal/domain/entities"
)

// AdapterInspector는 OS에 보이는 네트워크 어댑터의 상태를 조회하는 인터페이스입니다
type AdapterInspector interface {
	// Inspect는 이름으로 어댑터를 찾아 상태 스냅샷을 반환합니다.
	// 어댑터가 없으면 NotFound 도메인 에러를 반환합니다.
	Inspect(name string) (*entities.AdapterState, error)
}
