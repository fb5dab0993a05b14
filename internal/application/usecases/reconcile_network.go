package usecases

import (
	"context"
	"fmt"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"
	"detnet-agent/internal/domain/services"
	"detnet-agent/internal/infrastructure/metrics"
	"detnet-agent/pkg/utils"

	"github.com/sirupsen/logrus"
)

// ReconcileNetworkUseCase는 결정적 가상 네트워크 한 개를 조정하는 유스케이스입니다.
// 한 번의 패스는 기존 네트워크 조회 → 존재 시 삭제 → 생성 → 어댑터 확인 →
// 검증 순서로 진행되며, 재시도나 롤백 없이 결과를 보고합니다.
type ReconcileNetworkUseCase struct {
	accessor   interfaces.NetworkAccessor
	inspector  interfaces.AdapterInspector
	repository interfaces.ReconcileHistoryRepository
	builder    *services.DefinitionBuilder
	naming     *services.AdapterNamingService
	clock      interfaces.Clock
	logger     *logrus.Logger
}

// NewReconcileNetworkUseCase는 새로운 ReconcileNetworkUseCase를 생성합니다
func NewReconcileNetworkUseCase(
	accessor interfaces.NetworkAccessor,
	inspector interfaces.AdapterInspector,
	repository interfaces.ReconcileHistoryRepository,
	builder *services.DefinitionBuilder,
	naming *services.AdapterNamingService,
	clock interfaces.Clock,
	logger *logrus.Logger,
) *ReconcileNetworkUseCase {
	return &ReconcileNetworkUseCase{
		accessor:   accessor,
		inspector:  inspector,
		repository: repository,
		builder:    builder,
		naming:     naming,
		clock:      clock,
		logger:     logger,
	}
}

// ReconcileNetworkInput은 유스케이스의 입력 파라미터입니다
type ReconcileNetworkInput struct {
	Kind           entities.NetworkKind
	GatewayAddress string
	NetworkCIDR    string
}

// ReconcileNetworkOutput은 유스케이스의 출력 결과입니다
type ReconcileNetworkOutput struct {
	Outcome         entities.ReconcileOutcome
	NetworkID       string
	AdapterName     string
	DeletedExisting int
}

// Execute는 조정 패스 한 번을 실행하고 결과를 이력과 메트릭에 기록합니다
func (uc *ReconcileNetworkUseCase) Execute(ctx context.Context, input ReconcileNetworkInput) (*ReconcileNetworkOutput, error) {
	startTime := uc.clock.Now()

	output, err := uc.reconcile(ctx, input)

	outcome := entities.OutcomeFailed
	networkID := ""
	if err == nil {
		outcome = output.Outcome
		networkID = output.NetworkID
	} else if input.Kind.Supported() {
		networkID = input.Kind.Identity().String()
	}

	duration := uc.clock.Now().Sub(startTime).Seconds()
	metrics.RecordReconcilePass(string(input.Kind), string(outcome), duration)

	record := entities.ReconcileRecord{
		Kind:        input.Kind,
		NetworkID:   networkID,
		Outcome:     outcome,
		CompletedAt: uc.clock.Now(),
	}
	if err != nil {
		record.ErrorMessage = err.Error()
	}

	// 이력 저장 실패가 패스 결과를 바꾸지는 않습니다
	if saveErr := uc.repository.SaveRecord(ctx, record); saveErr != nil {
		uc.logger.WithError(saveErr).Warn("조정 이력 저장 실패")
	}

	return output, err
}

// reconcile은 상태 기계 본체입니다
func (uc *ReconcileNetworkUseCase) reconcile(ctx context.Context, input ReconcileNetworkInput) (*ReconcileNetworkOutput, error) {
	// 1. 종류 검증 — 네이티브 호출 전에 수행합니다
	if !input.Kind.Supported() {
		return nil, errors.NewUnsupportedKindError(
			fmt.Sprintf("지원하지 않는 네트워크 종류: %s", input.Kind),
			entities.ErrUnsupportedNetworkKind,
		)
	}

	// 2. 주소 일관성 검증 (게이트웨이가 프리픽스 안에 있어야 함)
	if err := utils.ValidateGatewayInCIDR(input.GatewayAddress, input.NetworkCIDR); err != nil {
		return nil, errors.NewValidationError("게이트웨이와 네트워크 주소가 일관되지 않음", err)
	}

	identity := input.Kind.Identity()

	uc.logger.WithFields(logrus.Fields{
		"kind":       input.Kind,
		"network_id": identity.String(),
		"gateway":    input.GatewayAddress,
		"cidr":       input.NetworkCIDR,
	}).Info("네트워크 조정 시작")

	// 3. 고정 식별자로 기존 네트워크 조회
	existing, err := uc.accessor.List(ctx, interfaces.ListFilter{ID: identity.String()})
	if err != nil {
		// 직접 조회 실패는 기존 네트워크 부재로 간주하고 생성을 계속합니다
		uc.logger.WithError(err).WithField("network_id", identity.String()).
			Debug("기존 네트워크 없음")
		existing = nil
	}

	// 4. 존재하면 삭제. 삭제 실패는 권고적입니다 — 삭제가 실제로 반영되지
	// 않았다면 이어지는 생성이 크게 실패하므로 조용히 넘어가지 않습니다.
	deleted := 0
	if len(existing) > 0 {
		deleteResult := uc.accessor.Delete(ctx, existing)
		deleted = deleteResult.Deleted
		for _, deleteErr := range deleteResult.Errors {
			uc.logger.WithError(deleteErr).Warn("기존 네트워크 삭제 실패")
		}
		if deleted > 0 {
			uc.logger.WithFields(logrus.Fields{
				"network_id": identity.String(),
				"deleted":    deleted,
			}).Info("기존 네트워크 정리 완료")
		}
	}

	// 5. 원하는 정의로 생성. 실패는 패스 전체에 치명적입니다.
	definition, err := uc.builder.Build(input.Kind, input.GatewayAddress, input.NetworkCIDR)
	if err != nil {
		return nil, err
	}

	if err := uc.accessor.Create(ctx, identity, definition); err != nil {
		return nil, err
	}

	// 6. 파생된 이름으로 어댑터 확인. 부재는 서비스가 어댑터 구체화를
	// 조용히 거부했다는 신호이므로 치명적입니다.
	adapterName, err := uc.naming.DeriveName(input.Kind)
	if err != nil {
		return nil, err
	}

	state, err := uc.inspector.Inspect(adapterName)
	if err != nil {
		return nil, err
	}

	output := &ReconcileNetworkOutput{
		NetworkID:       identity.String(),
		AdapterName:     adapterName,
		DeletedExisting: deleted,
	}

	// 7. 검증. 아직 Up이 아닌 어댑터는 실패가 아닙니다 — 패스 종료 후
	// 비동기로 올라오는 것을 허용합니다.
	if !state.Up {
		uc.logger.WithField("adapter", adapterName).
			Info("어댑터가 아직 Up 상태가 아님, 이후 활성화 예정")
		output.Outcome = entities.OutcomeAdapterPending
		return output, nil
	}

	if !state.HasAddress(input.GatewayAddress) {
		return nil, errors.NewVerificationError(fmt.Sprintf(
			"어댑터 %s에 게이트웨이 주소 %s가 할당되지 않음 (할당된 주소: %v)",
			adapterName, input.GatewayAddress, state.Addresses,
		))
	}

	uc.logger.WithFields(logrus.Fields{
		"kind":       input.Kind,
		"network_id": identity.String(),
		"adapter":    adapterName,
	}).Info("네트워크 조정 및 검증 완료")

	output.Outcome = entities.OutcomeVerified
	return output, nil
}
