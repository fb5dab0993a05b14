package hcn

import (
	"fmt"
	"strings"

	"detnet-agent/internal/domain/errors"
)

// nativeError는 네이티브 호출의 상태 코드와 결과 문자열을 단일 실패 신호로
// 정규화합니다. 상태 코드가 0이면서 결과 문자열이 비어있으면 성공(nil)입니다.
// 서비스는 상태 0과 함께 문자열로만 에러를 보고하기도 하므로 결과 문자열도
// 반드시 확인합니다. 치명 여부는 호출자가 결정합니다.
func nativeError(operation string, status int64, result string) error {
	if status == 0 && strings.TrimSpace(result) == "" {
		return nil
	}
	return errors.NewTransportError(
		fmt.Sprintf("%s -- HRESULT: 0x%08X. Result: %s", operation, uint32(status), result),
		nil,
	)
}
