package interfaces

import (
	"context"
	"detnet-agent/internal/domain/entities"

	"github.com/google/uuid"
)

// ObjectHandle은 네이티브 서비스가 반환하는 불투명 핸들입니다.
// open/create를 수행한 호출이 단독으로 소유하며, 성공/실패와 무관하게
// 모든 종료 경로에서 Close되어야 합니다.
type ObjectHandle uintptr

// ObjectOperations는 호스트 네트워크 설정 서비스가 노출하는 오브젝트 종류
// 하나에 바인딩된 네이티브 연산 테이블입니다. 순수한 전송 계층으로,
// 재시도 없이 서비스의 마샬링 규약을 그대로 전달합니다.
//
// 각 연산은 64비트 상태 코드와 서비스가 채워주는 결과 문자열을 반환합니다.
// 상태 코드 0 그리고 빈 결과 문자열이 성공이며, 어느 한쪽이라도 그렇지
// 않으면 실패입니다(서비스는 상태 0과 함께 문자열로 에러를 보고하기도 합니다).
type ObjectOperations interface {
	// Open은 식별자로 오브젝트를 열고 핸들을 반환합니다
	Open(id string) (handle ObjectHandle, result string, status int64)

	// Close는 핸들을 해제합니다
	Close(handle ObjectHandle) (status int64)

	// Enumerate는 질의 조건에 맞는 오브젝트 식별자 목록 JSON을 반환합니다
	Enumerate(query string) (document string, result string, status int64)

	// Query는 열린 오브젝트의 속성 JSON을 반환합니다
	Query(handle ObjectHandle, query string) (document string, result string, status int64)

	// Create는 설정 JSON으로 오브젝트를 생성하고 핸들을 반환합니다
	Create(id string, settings string) (handle ObjectHandle, result string, status int64)

	// Delete는 식별자로 오브젝트를 삭제합니다
	Delete(id string) (result string, status int64)
}

// ListFilter는 네트워크 오브젝트 조회 조건입니다
type ListFilter struct {
	// ID가 비어있지 않으면 열거를 생략하고 해당 식별자를 직접 조회합니다
	ID string

	// Filter는 서비스에 전달할 필터 JSON 문자열입니다
	Filter string

	// Detailed는 전체 속성 조회 여부입니다
	Detailed bool
}

// DeleteResult는 오브젝트별 삭제 결과입니다.
// 일부 실패는 오브젝트 단위로 보고되며 롤백되지 않습니다.
type DeleteResult struct {
	Deleted int
	Errors  []error
}

// NetworkAccessor는 네트워크 오브젝트에 대한 제네릭 접근자입니다
type NetworkAccessor interface {
	// List는 조건에 맞는 네트워크 오브젝트들을 조회합니다.
	// 호출할 때마다 다시 열거하며 상태를 캐시하지 않습니다.
	List(ctx context.Context, filter ListFilter) ([]entities.NetworkObject, error)

	// Delete는 이전에 조회한 오브젝트들을 각각 삭제합니다
	Delete(ctx context.Context, objects []entities.NetworkObject) DeleteResult

	// Create는 고정 식별자와 네트워크 정의로 네트워크를 생성합니다
	Create(ctx context.Context, id uuid.UUID, definition *entities.NetworkDefinition) error
}
