//go:build !windows

package hcn

import (
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"
)

// NewNativeNetworkOperations는 호스트 네트워크 서비스가 없는 플랫폼에서는
// 연산 테이블을 만들 수 없습니다
func NewNativeNetworkOperations() (interfaces.ObjectOperations, error) {
	return nil, errors.NewSystemError("이 플랫폼에서는 호스트 네트워크 서비스를 사용할 수 없음", nil)
}
