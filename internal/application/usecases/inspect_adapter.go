package usecases

import (
	"context"
	"fmt"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"
	"detnet-agent/internal/domain/services"

	"github.com/sirupsen/logrus"
)

// InspectAdapterUseCase는 결정적 네트워크 어댑터의 현재 상태를 조회하는
// 유스케이스입니다. 워크로드 실행 전후에 어댑터가 활성화되어 있고 기대한
// 게이트웨이 주소를 가지고 있는지 외부 협력자가 확인할 때 사용됩니다.
type InspectAdapterUseCase struct {
	inspector  interfaces.AdapterInspector
	repository interfaces.ReconcileHistoryRepository
	naming     *services.AdapterNamingService
	logger     *logrus.Logger
}

// NewInspectAdapterUseCase는 새로운 InspectAdapterUseCase를 생성합니다
func NewInspectAdapterUseCase(
	inspector interfaces.AdapterInspector,
	repository interfaces.ReconcileHistoryRepository,
	naming *services.AdapterNamingService,
	logger *logrus.Logger,
) *InspectAdapterUseCase {
	return &InspectAdapterUseCase{
		inspector:  inspector,
		repository: repository,
		naming:     naming,
		logger:     logger,
	}
}

// InspectAdapterInput은 유스케이스의 입력 파라미터입니다
type InspectAdapterInput struct {
	Kind           entities.NetworkKind
	GatewayAddress string
}

// InspectAdapterOutput은 유스케이스의 출력 결과입니다
type InspectAdapterOutput struct {
	AdapterName    string
	Enabled        bool
	GatewayPresent bool
	LastRecord     *entities.ReconcileRecord
}

// Execute는 어댑터 상태 조회를 실행합니다.
// 어댑터 부재는 에러가 아니라 비활성 상태로 보고됩니다.
func (uc *InspectAdapterUseCase) Execute(ctx context.Context, input InspectAdapterInput) (*InspectAdapterOutput, error) {
	if !input.Kind.Supported() {
		return nil, errors.NewUnsupportedKindError(
			fmt.Sprintf("지원하지 않는 네트워크 종류: %s", input.Kind),
			entities.ErrUnsupportedNetworkKind,
		)
	}

	adapterName, err := uc.naming.DeriveName(input.Kind)
	if err != nil {
		return nil, err
	}

	output := &InspectAdapterOutput{
		AdapterName: adapterName,
	}

	state, err := uc.inspector.Inspect(adapterName)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.WithField("adapter", adapterName).Debug("어댑터가 존재하지 않음")
	} else {
		output.Enabled = state.Up
		output.GatewayPresent = input.GatewayAddress != "" && state.HasAddress(input.GatewayAddress)
	}

	// 마지막 조정 이력은 참고 정보이므로 조회 실패가 결과를 막지 않습니다
	record, err := uc.repository.GetLatestRecord(ctx, input.Kind)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.WithError(err).Warn("조정 이력 조회 실패")
		}
	} else {
		output.LastRecord = record
	}

	return output, nil
}
