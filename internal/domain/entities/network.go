package entities

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NetworkKind는 결정적 가상 네트워크의 종류를 나타냅니다
type NetworkKind string

const (
	KindWSL    NetworkKind = "wsl"
	KindHyperV NetworkKind = "hyperv"
)

var (
	ErrUnsupportedNetworkKind = errors.New("지원하지 않는 네트워크 종류")
	ErrInvalidDefinition      = errors.New("유효하지 않은 네트워크 정의")
)

// 종류별 고정 네트워크 식별자입니다. 같은 종류는 항상 같은 GUID로 매핑되므로
// 기존 네트워크 조회는 휴리스틱이 아닌 정확 일치로 수행됩니다.
var wellKnownIdentities = map[NetworkKind]uuid.UUID{
	KindWSL:    uuid.MustParse("b95d0c5e-57d4-412b-b571-18a81a16e005"),
	KindHyperV: uuid.MustParse("c08cb7b8-9b3c-408e-8e30-5e16a3aeb444"),
}

// 종류별 가상 스위치 이름입니다
var switchNames = map[NetworkKind]string{
	KindWSL:    "WSL",
	KindHyperV: "Default Switch",
}

// ParseNetworkKind는 문자열을 NetworkKind로 변환합니다
func ParseNetworkKind(value string) (NetworkKind, error) {
	kind := NetworkKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Supported() {
		return "", ErrUnsupportedNetworkKind
	}
	return kind, nil
}

// Supported는 네트워크 종류가 고정 열거에 포함되는지 확인합니다
func (k NetworkKind) Supported() bool {
	_, ok := wellKnownIdentities[k]
	return ok
}

// Identity는 네트워크 종류에 1:1로 결합된 고정 GUID를 반환합니다
func (k NetworkKind) Identity() uuid.UUID {
	return wellKnownIdentities[k]
}

// SwitchName은 네트워크 종류의 가상 스위치 이름을 반환합니다
func (k NetworkKind) SwitchName() string {
	return switchNames[k]
}

// IPSubnet은 네트워크 정의의 IP 서브넷 자식 오브젝트입니다
type IPSubnet struct {
	ObjectType    int    `json:"ObjectType"`
	AddressPrefix string `json:"AddressPrefix"`
	Flags         int    `json:"Flags"`
}

// Subnet은 네트워크 정의의 서브넷 오브젝트입니다
type Subnet struct {
	ObjectType     int        `json:"ObjectType"`
	AddressPrefix  string     `json:"AddressPrefix"`
	GatewayAddress string     `json:"GatewayAddress"`
	IPSubnets      []IPSubnet `json:"IpSubnets"`
}

// MacPool은 네트워크에 할당되는 MAC 주소 풀 범위입니다
type MacPool struct {
	StartMacAddress string `json:"StartMacAddress"`
	EndMacAddress   string `json:"EndMacAddress"`
}

// NetworkDefinition은 호스트 네트워크 서비스에 제출하는 네트워크 설정입니다.
// 필드 순서가 직렬화 결과를 결정하므로 같은 입력은 항상 같은 JSON을 만듭니다.
type NetworkDefinition struct {
	Name                   string    `json:"Name"`
	ID                     string    `json:"ID"`
	Type                   string    `json:"Type"`
	Flags                  int       `json:"Flags"`
	IsolateSwitch          bool      `json:"IsolateSwitch,omitempty"`
	SwitchGUID             string    `json:"SwitchGuid,omitempty"`
	MaxConcurrentEndpoints int       `json:"MaxConcurrentEndpoints"`
	Subnets                []Subnet  `json:"Subnets"`
	MacPools               []MacPool `json:"MacPools"`
	DNSServerList          string    `json:"DNSServerList"`
}

// Validate는 네트워크 정의의 구조적 유효성을 검증합니다.
// 주소 산술(게이트웨이가 프리픽스에 포함되는지)은 호출자 책임입니다.
func (d *NetworkDefinition) Validate() error {
	if d.Name == "" || d.ID == "" || d.Type == "" {
		return ErrInvalidDefinition
	}
	if len(d.Subnets) != 1 || len(d.Subnets[0].IPSubnets) != 1 {
		return ErrInvalidDefinition
	}
	if d.Subnets[0].AddressPrefix == "" || d.Subnets[0].GatewayAddress == "" {
		return ErrInvalidDefinition
	}
	return nil
}

// Encode는 네트워크 정의를 서비스 경계에서 사용할 JSON으로 직렬화합니다
func (d *NetworkDefinition) Encode() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

// NetworkObject는 서비스가 보유한 네트워크 오브젝트 하나의 조회 결과입니다
type NetworkObject struct {
	ID         uuid.UUID
	Properties json.RawMessage
}

// AdapterState는 OS에 보이는 네트워크 어댑터의 상태 스냅샷입니다
type AdapterState struct {
	Name      string
	Up        bool
	Addresses []string
}

// HasAddress는 어댑터에 지정한 IP 주소가 할당되어 있는지 확인합니다
func (s *AdapterState) HasAddress(address string) bool {
	want := net.ParseIP(address)
	if want == nil {
		return false
	}
	for _, assigned := range s.Addresses {
		if ip := net.ParseIP(assigned); ip != nil && ip.Equal(want) {
			return true
		}
	}
	return false
}

// ReconcileOutcome은 조정 패스 한 번의 최종 결과를 나타냅니다
type ReconcileOutcome string

const (
	// OutcomeVerified는 어댑터가 Up 상태이고 게이트웨이 주소까지 확인된 경우입니다
	OutcomeVerified ReconcileOutcome = "verified"

	// OutcomeAdapterPending은 어댑터가 아직 초기화를 마치지 못한 경우입니다.
	// 어댑터는 패스 종료 후 비동기로 Up 상태에 도달하므로 실패로 취급하지 않습니다.
	OutcomeAdapterPending ReconcileOutcome = "adapter-pending"

	// OutcomeFailed는 패스가 치명적 오류로 종료된 경우의 기록용 값입니다
	OutcomeFailed ReconcileOutcome = "failed"
)

// ReconcileRecord는 조정 패스 이력의 영속화 단위입니다
type ReconcileRecord struct {
	ID           int
	Kind         NetworkKind
	NetworkID    string
	Outcome      ReconcileOutcome
	ErrorMessage string
	CompletedAt  time.Time
}
