package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	t.Run("원인이 없는 에러", func(t *testing.T) {
		err := NewVerificationError("게이트웨이 주소가 할당되지 않음")
		assert.Equal(t, "[VERIFICATION] 게이트웨이 주소가 할당되지 않음", err.Error())
	})

	t.Run("원인이 있는 에러", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := NewTransportError("네이티브 호출 실패", cause)
		assert.Equal(t, "[TRANSPORT] 네이티브 호출 실패: connection refused", err.Error())
	})
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := stderrors.New("invalid prefix")
	err := NewValidationError("검증 실패", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorTypeHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"검증 에러", NewValidationError("검증 실패", nil), IsValidationError},
		{"부재 에러", NewNotFoundError("오브젝트 없음"), IsNotFoundError},
		{"전송 에러", NewTransportError("호출 실패", nil), IsTransportError},
		{"검증 실패 에러", NewVerificationError("사후 조건 불일치"), IsVerificationError},
		{"지원하지 않는 종류 에러", NewUnsupportedKindError("알 수 없는 종류", nil), IsUnsupportedKindError},
		{"시스템 에러", NewSystemError("시스템 실패", nil), IsSystemError},
	}

	checkers := []func(error) bool{
		IsValidationError, IsNotFoundError, IsTransportError,
		IsVerificationError, IsUnsupportedKindError, IsSystemError,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := 0
			for _, checker := range checkers {
				if checker(tt.err) {
					matched++
				}
			}

			// 정확히 자신의 타입 하나에만 일치해야 합니다
			assert.True(t, tt.checker(tt.err))
			assert.Equal(t, 1, matched)
		})
	}
}

func TestErrorTypeHelpers_래핑된에러(t *testing.T) {
	inner := NewTransportError("HcnCreateNetwork -- HRESULT: 0x80070005. Result: ", nil)
	wrapped := fmt.Errorf("조정 패스 실패: %w", inner)

	assert.True(t, IsTransportError(wrapped))
	assert.False(t, IsTransportError(stderrors.New("plain error")))
	assert.False(t, IsTransportError(nil))
}
