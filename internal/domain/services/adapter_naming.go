package services

import (
	"fmt"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
)

// AdapterNamingService는 네트워크 종류로부터 어댑터 이름을 파생하는 서비스입니다.
// 파생된 이름은 생성 후 검증에만 사용하며, 네트워크의 식별자로 쓰지 않습니다.
type AdapterNamingService struct{}

// NewAdapterNamingService는 새로운 AdapterNamingService를 생성합니다
func NewAdapterNamingService() *AdapterNamingService {
	return &AdapterNamingService{}
}

// DeriveName은 가상 스위치 이름으로부터 OS에 보이는 어댑터 이름을 파생합니다
func (s *AdapterNamingService) DeriveName(kind entities.NetworkKind) (string, error) {
	if !kind.Supported() {
		return "", errors.NewUnsupportedKindError("어댑터 이름을 파생할 수 없는 종류", entities.ErrUnsupportedNetworkKind)
	}
	return fmt.Sprintf("vEthernet (%s)", kind.SwitchName()), nil
}
