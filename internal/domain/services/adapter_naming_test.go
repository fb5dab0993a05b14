package services

import (
	"testing"

	"detnet-agent/internal/domain/entities"
	domainErrors "detnet-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterNamingService_DeriveName(t *testing.T) {
	service := NewAdapterNamingService()

	tests := []struct {
		name      string
		kind      entities.NetworkKind
		expected  string
		wantError bool
	}{
		{
			name:     "WSL 어댑터 이름",
			kind:     entities.KindWSL,
			expected: "vEthernet (WSL)",
		},
		{
			name:     "HyperV 어댑터 이름",
			kind:     entities.KindHyperV,
			expected: "vEthernet (Default Switch)",
		},
		{
			name:      "지원하지 않는 종류",
			kind:      entities.NetworkKind("docker"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := service.DeriveName(tt.kind)

			if tt.wantError {
				assert.True(t, domainErrors.IsUnsupportedKindError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}
