package errors

import (
	"errors"
	"fmt"
)

// ErrorType은 에러의 종류를 나타냅니다
type ErrorType string

const (
	// ErrorTypeValidation은 유효성 검증 실패를 나타냅니다
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound는 기대한 오브젝트(네트워크 또는 어댑터)가 없음을 나타냅니다
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeTransport는 네이티브 서비스 호출 실패를 나타냅니다
	// (상태 코드가 0이 아니거나 결과 문자열이 비어있지 않은 경우)
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeVerification은 오브젝트가 존재하지만 기대한 사후 조건을
	// 충족하지 못함을 나타냅니다
	ErrorTypeVerification ErrorType = "VERIFICATION"

	// ErrorTypeUnsupportedKind는 고정 열거 밖의 네트워크 종류를 나타냅니다
	ErrorTypeUnsupportedKind ErrorType = "UNSUPPORTED_KIND"

	// ErrorTypeSystem은 시스템 레벨 에러를 나타냅니다
	ErrorTypeSystem ErrorType = "SYSTEM"
)

// DomainError는 도메인 레벨의 에러를 나타냅니다
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error는 error 인터페이스를 구현합니다
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap은 내부 에러를 반환합니다
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is는 에러 비교를 위한 메서드입니다
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// 생성자 함수들

// NewValidationError는 유효성 검증 에러를 생성합니다
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError는 오브젝트를 찾을 수 없는 에러를 생성합니다
func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewTransportError는 네이티브 호출 실패 에러를 생성합니다
func NewTransportError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTransport,
		Message: message,
		Cause:   cause,
	}
}

// NewVerificationError는 사후 조건 검증 실패 에러를 생성합니다
func NewVerificationError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeVerification,
		Message: message,
	}
}

// NewUnsupportedKindError는 지원하지 않는 네트워크 종류 에러를 생성합니다
func NewUnsupportedKindError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeUnsupportedKind,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError는 시스템 에러를 생성합니다
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// 에러 타입 확인 헬퍼 함수들

// IsValidationError는 유효성 검증 에러인지 확인합니다
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError는 오브젝트를 찾을 수 없는 에러인지 확인합니다
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsTransportError는 네이티브 호출 실패 에러인지 확인합니다
func IsTransportError(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// IsVerificationError는 검증 실패 에러인지 확인합니다
func IsVerificationError(err error) bool {
	return isType(err, ErrorTypeVerification)
}

// IsUnsupportedKindError는 지원하지 않는 종류 에러인지 확인합니다
func IsUnsupportedKindError(err error) bool {
	return isType(err, ErrorTypeUnsupportedKind)
}

// IsSystemError는 시스템 에러인지 확인합니다
func IsSystemError(err error) bool {
	return isType(err, ErrorTypeSystem)
}

func isType(err error, errorType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errorType
	}
	return false
}
