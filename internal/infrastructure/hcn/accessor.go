package hcn

import (
	"context"
	"encoding/json"
	"time"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"
	"detnet-agent/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 네이티브 연산 이름들입니다. 실패 보고에 그대로 사용됩니다.
const (
	opOpen      = "HcnOpenNetwork"
	opClose     = "HcnCloseNetwork"
	opEnumerate = "HcnEnumerateNetworks"
	opQuery     = "HcnQueryNetworkProperties"
	opCreate    = "HcnCreateNetwork"
	opDelete    = "HcnDeleteNetwork"
)

// queryEnvelope는 열거/조회 요청의 JSON 봉투입니다
type queryEnvelope struct {
	Filter        string        `json:"Filter,omitempty"`
	SchemaVersion schemaVersion `json:"SchemaVersion"`
	Flags         int           `json:"Flags,omitempty"`
}

type schemaVersion struct {
	Major int `json:"Major"`
	Minor int `json:"Minor"`
}

// 전체 속성 조회를 나타내는 Flags 값입니다
const flagsDetailed = 1

// NetworkAccessor는 바인딩된 연산 테이블 위에서 네트워크 오브젝트의
// 열거/조회/생성/삭제를 구현하는 제네릭 접근자입니다
type NetworkAccessor struct {
	ops    interfaces.ObjectOperations
	logger *logrus.Logger
}

// NewNetworkAccessor는 새로운 NetworkAccessor를 생성합니다
func NewNetworkAccessor(ops interfaces.ObjectOperations, logger *logrus.Logger) interfaces.NetworkAccessor {
	return &NetworkAccessor{
		ops:    ops,
		logger: logger,
	}
}

// List는 조건에 맞는 네트워크 오브젝트들을 조회합니다.
// 식별자가 주어지면 열거를 생략하고 해당 오브젝트를 직접 조회하며,
// 그렇지 않으면 식별자 목록을 열거한 뒤 각각 열기/조회/닫기를 수행합니다.
func (a *NetworkAccessor) List(ctx context.Context, filter interfaces.ListFilter) ([]entities.NetworkObject, error) {
	query, err := buildEnvelope(filter)
	if err != nil {
		return nil, err
	}

	if filter.ID != "" {
		id, parseErr := uuid.Parse(filter.ID)
		if parseErr != nil {
			return nil, errors.NewValidationError("유효하지 않은 네트워크 식별자", parseErr)
		}
		object, queryErr := a.queryOne(id, query)
		if queryErr != nil {
			return nil, queryErr
		}
		return []entities.NetworkObject{object}, nil
	}

	ids, err := a.enumerateIDs(query)
	if err != nil {
		return nil, err
	}

	objects := make([]entities.NetworkObject, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			return nil, errors.NewSystemError("네트워크 조회가 취소됨", ctx.Err())
		}

		object, queryErr := a.queryOne(id, query)
		if queryErr != nil {
			// 오브젝트 하나가 손상되어도 나머지 조회를 계속합니다
			a.logger.WithError(queryErr).WithField("network_id", id.String()).
				Warn("네트워크 오브젝트 조회 실패, 건너뜀")
			continue
		}
		objects = append(objects, object)
	}

	return objects, nil
}

// Delete는 이전에 조회한 오브젝트들을 각각 삭제합니다.
// 오브젝트 단위로 실패를 수집하며 롤백하지 않습니다.
func (a *NetworkAccessor) Delete(ctx context.Context, objects []entities.NetworkObject) interfaces.DeleteResult {
	deleteResult := interfaces.DeleteResult{}

	for _, object := range objects {
		if ctx.Err() != nil {
			deleteResult.Errors = append(deleteResult.Errors,
				errors.NewSystemError("네트워크 삭제가 취소됨", ctx.Err()))
			return deleteResult
		}

		start := time.Now()
		result, status := a.ops.Delete(object.ID.String())
		err := nativeError(opDelete, status, result)
		metrics.ObserveNativeCall(opDelete, time.Since(start).Seconds(), err != nil)

		if err != nil {
			deleteResult.Errors = append(deleteResult.Errors, err)
			continue
		}

		deleteResult.Deleted++
		a.logger.WithField("network_id", object.ID.String()).Info("네트워크 오브젝트 삭제 완료")
	}

	return deleteResult
}

// Create는 고정 식별자와 네트워크 정의로 네트워크를 생성합니다.
// 반환된 핸들은 로깅용 속성 조회 한 번 뒤 즉시 닫습니다.
func (a *NetworkAccessor) Create(ctx context.Context, id uuid.UUID, definition *entities.NetworkDefinition) error {
	if ctx.Err() != nil {
		return errors.NewSystemError("네트워크 생성이 취소됨", ctx.Err())
	}

	payload, err := definition.Encode()
	if err != nil {
		return errors.NewSystemError("네트워크 정의 직렬화 실패", err)
	}

	start := time.Now()
	handle, result, status := a.ops.Create(id.String(), string(payload))
	createErr := nativeError(opCreate, status, result)
	metrics.ObserveNativeCall(opCreate, time.Since(start).Seconds(), createErr != nil)
	if createErr != nil {
		return createErr
	}
	defer a.closeHandle(handle)

	query, err := buildEnvelope(interfaces.ListFilter{Detailed: true})
	if err != nil {
		a.logger.WithError(err).Warn("속성 조회 봉투 생성 실패")
		return nil
	}

	// 생성 직후 속성 조회는 로깅에만 사용하므로 실패해도 패스를 막지 않습니다
	document, result, status := a.ops.Query(handle, query)
	if queryErr := nativeError(opQuery, status, result); queryErr != nil {
		a.logger.WithError(queryErr).WithField("network_id", id.String()).
			Warn("생성된 네트워크 속성 조회 실패")
		return nil
	}

	a.logger.WithFields(logrus.Fields{
		"network_id": id.String(),
		"name":       definition.Name,
		"properties": document,
	}).Info("네트워크 생성 완료")

	return nil
}

// enumerateIDs는 질의 조건에 맞는 오브젝트 식별자들을 열거합니다.
// 빈 목록이나 null 응답은 에러가 아니라 빈 결과입니다.
func (a *NetworkAccessor) enumerateIDs(query string) ([]uuid.UUID, error) {
	start := time.Now()
	document, result, status := a.ops.Enumerate(query)
	err := nativeError(opEnumerate, status, result)
	metrics.ObserveNativeCall(opEnumerate, time.Since(start).Seconds(), err != nil)
	if err != nil {
		return nil, err
	}

	if document == "" {
		return nil, nil
	}

	var raw []string
	if unmarshalErr := json.Unmarshal([]byte(document), &raw); unmarshalErr != nil {
		return nil, errors.NewSystemError("열거 응답 파싱 실패", unmarshalErr)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, parseErr := uuid.Parse(value)
		if parseErr != nil {
			a.logger.WithField("network_id", value).Warn("열거된 식별자 파싱 실패, 건너뜀")
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// queryOne은 오브젝트 하나를 열고 속성을 조회한 뒤 닫습니다.
// 핸들은 이 호출 범위를 벗어나 보관되지 않습니다.
func (a *NetworkAccessor) queryOne(id uuid.UUID, query string) (entities.NetworkObject, error) {
	start := time.Now()
	handle, result, status := a.ops.Open(id.String())
	openErr := nativeError(opOpen, status, result)
	metrics.ObserveNativeCall(opOpen, time.Since(start).Seconds(), openErr != nil)
	if openErr != nil {
		return entities.NetworkObject{}, openErr
	}
	defer a.closeHandle(handle)

	start = time.Now()
	document, result, status := a.ops.Query(handle, query)
	queryErr := nativeError(opQuery, status, result)
	metrics.ObserveNativeCall(opQuery, time.Since(start).Seconds(), queryErr != nil)
	if queryErr != nil {
		return entities.NetworkObject{}, queryErr
	}

	return entities.NetworkObject{
		ID:         id,
		Properties: json.RawMessage(document),
	}, nil
}

// closeHandle은 핸들을 해제합니다. 해제 실패는 권고적으로만 기록합니다.
func (a *NetworkAccessor) closeHandle(handle interfaces.ObjectHandle) {
	start := time.Now()
	status := a.ops.Close(handle)
	err := nativeError(opClose, status, "")
	metrics.ObserveNativeCall(opClose, time.Since(start).Seconds(), err != nil)
	if err != nil {
		a.logger.WithError(err).Warn("네트워크 핸들 해제 실패")
	}
}

// buildEnvelope는 열거/조회 요청의 JSON 봉투를 만듭니다
func buildEnvelope(filter interfaces.ListFilter) (string, error) {
	envelope := queryEnvelope{
		Filter:        filter.Filter,
		SchemaVersion: schemaVersion{Major: 2, Minor: 0},
	}
	if filter.Detailed {
		envelope.Flags = flagsDetailed
	}

	encoded, err := json.Marshal(envelope)
	if err != nil {
		return "", errors.NewSystemError("질의 봉투 직렬화 실패", err)
	}
	return string(encoded), nil
}
