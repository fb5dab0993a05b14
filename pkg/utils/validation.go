package utils

import (
	"fmt"
	"net"
)

// ValidateGatewayAddress는 게이트웨이 주소가 유효한 IPv4 주소인지 검증
func ValidateGatewayAddress(address string) error {
	if address == "" {
		return fmt.Errorf("게이트웨이 주소가 비어있음")
	}

	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("잘못된 게이트웨이 주소 형식: %s", address)
	}

	return nil
}

// ValidateNetworkCIDR은 네트워크 주소가 유효한 CIDR 표기인지 검증
func ValidateNetworkCIDR(cidr string) error {
	if cidr == "" {
		return fmt.Errorf("네트워크 CIDR이 비어있음")
	}

	if _, _, err := net.ParseCIDR(cidr); err != nil {
		return fmt.Errorf("잘못된 네트워크 CIDR 형식: %s", cidr)
	}

	return nil
}

// ValidateGatewayInCIDR은 게이트웨이 주소가 네트워크 프리픽스 안에 있는지 검증
func ValidateGatewayInCIDR(gateway, cidr string) error {
	if err := ValidateGatewayAddress(gateway); err != nil {
		return err
	}
	if err := ValidateNetworkCIDR(cidr); err != nil {
		return err
	}

	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("잘못된 네트워크 CIDR 형식: %s", cidr)
	}

	if !ipNet.Contains(net.ParseIP(gateway)) {
		return fmt.Errorf("게이트웨이 %s가 네트워크 %s에 포함되지 않음", gateway, cidr)
	}

	return nil
}
