package adapters

import (
	"fmt"
	"net"

	"detnet-agent/internal/domain/entities"
	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// NetAdapterInspector는 표준 net 패키지로 어댑터 상태를 조회하는
// AdapterInspector 구현체입니다
type NetAdapterInspector struct {
	logger *logrus.Logger
}

// NewNetAdapterInspector는 새로운 NetAdapterInspector를 생성합니다
func NewNetAdapterInspector(logger *logrus.Logger) interfaces.AdapterInspector {
	return &NetAdapterInspector{
		logger: logger,
	}
}

// Inspect는 이름으로 어댑터를 찾아 상태 스냅샷을 반환합니다
func (i *NetAdapterInspector) Inspect(name string) (*entities.AdapterState, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("네트워크 어댑터를 찾을 수 없음: %s", name))
	}

	state := &entities.AdapterState{
		Name: name,
		Up:   iface.Flags&net.FlagUp != 0,
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, errors.NewSystemError("어댑터 주소 조회 실패", err)
	}

	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok {
			state.Addresses = append(state.Addresses, ipNet.IP.String())
			continue
		}
		state.Addresses = append(state.Addresses, addr.String())
	}

	i.logger.WithFields(logrus.Fields{
		"adapter":   name,
		"up":        state.Up,
		"addresses": state.Addresses,
	}).Debug("어댑터 상태 조회 완료")

	return state, nil
}
