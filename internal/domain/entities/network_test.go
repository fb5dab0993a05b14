package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetworkKind(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  NetworkKind
		wantError bool
	}{
		{
			name:     "wsl 종류 파싱",
			input:    "wsl",
			expected: KindWSL,
		},
		{
			name:     "대문자와 공백 정규화",
			input:    "  HyperV  ",
			expected: KindHyperV,
		},
		{
			name:      "지원하지 않는 종류",
			input:     "docker",
			wantError: true,
		},
		{
			name:      "빈 문자열",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseNetworkKind(tt.input)

			if tt.wantError {
				assert.ErrorIs(t, err, ErrUnsupportedNetworkKind)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestNetworkKind_Identity(t *testing.T) {
	// 같은 종류는 실행마다 항상 같은 식별자로 매핑되어야 합니다
	first := KindWSL.Identity()
	second := KindWSL.Identity()

	assert.Equal(t, first, second)
	assert.Equal(t, "b95d0c5e-57d4-412b-b571-18a81a16e005", first.String())
	assert.Equal(t, "c08cb7b8-9b3c-408e-8e30-5e16a3aeb444", KindHyperV.Identity().String())
	assert.NotEqual(t, KindWSL.Identity(), KindHyperV.Identity())
}

func TestNetworkKind_SwitchName(t *testing.T) {
	assert.Equal(t, "WSL", KindWSL.SwitchName())
	assert.Equal(t, "Default Switch", KindHyperV.SwitchName())
}

func TestNetworkDefinition_Validate(t *testing.T) {
	valid := func() *NetworkDefinition {
		return &NetworkDefinition{
			Name: "WSL",
			ID:   "B95D0C5E-57D4-412B-B571-18A81A16E005",
			Type: "ICS",
			Subnets: []Subnet{
				{
					ObjectType:     5,
					AddressPrefix:  "172.30.0.0/23",
					GatewayAddress: "172.30.0.1",
					IPSubnets: []IPSubnet{
						{ObjectType: 6, AddressPrefix: "172.30.0.0/23", Flags: 3},
					},
				},
			},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*NetworkDefinition)
		wantError bool
	}{
		{
			name:   "유효한 정의",
			mutate: func(d *NetworkDefinition) {},
		},
		{
			name:      "이름 없음",
			mutate:    func(d *NetworkDefinition) { d.Name = "" },
			wantError: true,
		},
		{
			name:      "서브넷 없음",
			mutate:    func(d *NetworkDefinition) { d.Subnets = nil },
			wantError: true,
		},
		{
			name: "서브넷 두 개",
			mutate: func(d *NetworkDefinition) {
				d.Subnets = append(d.Subnets, d.Subnets[0])
			},
			wantError: true,
		},
		{
			name:      "IP 서브넷 없음",
			mutate:    func(d *NetworkDefinition) { d.Subnets[0].IPSubnets = nil },
			wantError: true,
		},
		{
			name:      "게이트웨이 없음",
			mutate:    func(d *NetworkDefinition) { d.Subnets[0].GatewayAddress = "" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			definition := valid()
			tt.mutate(definition)

			err := definition.Validate()
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidDefinition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdapterState_HasAddress(t *testing.T) {
	state := &AdapterState{
		Name:      "vEthernet (WSL)",
		Up:        true,
		Addresses: []string{"172.30.0.1", "fe80::1"},
	}

	assert.True(t, state.HasAddress("172.30.0.1"))
	assert.False(t, state.HasAddress("172.30.0.2"))
	assert.False(t, state.HasAddress("not-an-ip"))

	empty := &AdapterState{Name: "vEthernet (WSL)"}
	assert.False(t, empty.HasAddress("172.30.0.1"))
}
