package services

import (
	"strings"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
)

// 서비스 스키마의 오브젝트 식별자입니다
const (
	subnetObjectType   = 5
	ipSubnetObjectType = 6
	ipSubnetFlags      = 3
)

// kindTemplate은 네트워크 종류별 고정 상수 집합입니다
type kindTemplate struct {
	networkType            string
	flags                  int
	isolateSwitch          bool
	carriesSwitchGUID      bool
	maxConcurrentEndpoints int
	macPoolStart           string
	macPoolEnd             string
}

// 종류별 템플릿 테이블입니다. 코드 경로를 복제하는 대신 데이터로 유지합니다.
var kindTemplates = map[entities.NetworkKind]kindTemplate{
	entities.KindWSL: {
		networkType:            "ICS",
		flags:                  9,
		isolateSwitch:          true,
		maxConcurrentEndpoints: 1,
		macPoolStart:           "00-15-5D-52-C0-00",
		macPoolEnd:             "00-15-5D-52-CF-FF",
	},
	entities.KindHyperV: {
		networkType:            "ICS",
		flags:                  11,
		carriesSwitchGUID:      true,
		maxConcurrentEndpoints: 32,
		macPoolStart:           "00-15-5D-28-C0-00",
		macPoolEnd:             "00-15-5D-28-CF-FF",
	},
}

// DefinitionBuilder는 원하는 네트워크의 설정 페이로드를 조립하는 서비스입니다
type DefinitionBuilder struct{}

// NewDefinitionBuilder는 새로운 DefinitionBuilder를 생성합니다
func NewDefinitionBuilder() *DefinitionBuilder {
	return &DefinitionBuilder{}
}

// Build는 (종류, 게이트웨이, CIDR)로부터 네트워크 정의를 만드는 순수 함수입니다.
// 같은 입력은 항상 같은 정의를 만들며 부수 효과가 없습니다.
// 게이트웨이가 CIDR 안에 있는지는 호출자가 검증합니다.
func (b *DefinitionBuilder) Build(kind entities.NetworkKind, gatewayAddress, networkCIDR string) (*entities.NetworkDefinition, error) {
	template, ok := kindTemplates[kind]
	if !ok {
		return nil, errors.NewUnsupportedKindError("네트워크 정의를 만들 수 없는 종류", entities.ErrUnsupportedNetworkKind)
	}
	if gatewayAddress == "" || networkCIDR == "" {
		return nil, errors.NewValidationError("게이트웨이 주소와 CIDR은 비어있을 수 없음", nil)
	}

	identity := kind.Identity()
	definition := &entities.NetworkDefinition{
		Name:                   kind.SwitchName(),
		ID:                     strings.ToUpper(identity.String()),
		Type:                   template.networkType,
		Flags:                  template.flags,
		IsolateSwitch:          template.isolateSwitch,
		MaxConcurrentEndpoints: template.maxConcurrentEndpoints,
		Subnets: []entities.Subnet{
			{
				ObjectType:     subnetObjectType,
				AddressPrefix:  networkCIDR,
				GatewayAddress: gatewayAddress,
				IPSubnets: []entities.IPSubnet{
					{
						ObjectType:    ipSubnetObjectType,
						AddressPrefix: networkCIDR,
						Flags:         ipSubnetFlags,
					},
				},
			},
		},
		MacPools: []entities.MacPool{
			{
				StartMacAddress: template.macPoolStart,
				EndMacAddress:   template.macPoolEnd,
			},
		},
		DNSServerList: gatewayAddress,
	}

	if template.carriesSwitchGUID {
		definition.SwitchGUID = strings.ToUpper(identity.String())
	}

	return definition, nil
}
