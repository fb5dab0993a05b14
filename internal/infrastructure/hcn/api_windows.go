//go:build windows

package hcn

import (
	"fmt"
	"unsafe"

	"detnet-agent/internal/domain/errors"
	"detnet-agent/internal/domain/interfaces"

	"golang.org/x/sys/windows"
)

var (
	modComputeNetwork = windows.NewLazySystemDLL("computenetwork.dll")
	modOle32          = windows.NewLazySystemDLL("ole32.dll")

	procHcnEnumerateNetworks      = modComputeNetwork.NewProc("HcnEnumerateNetworks")
	procHcnOpenNetwork            = modComputeNetwork.NewProc("HcnOpenNetwork")
	procHcnQueryNetworkProperties = modComputeNetwork.NewProc("HcnQueryNetworkProperties")
	procHcnCreateNetwork          = modComputeNetwork.NewProc("HcnCreateNetwork")
	procHcnDeleteNetwork          = modComputeNetwork.NewProc("HcnDeleteNetwork")
	procHcnCloseNetwork           = modComputeNetwork.NewProc("HcnCloseNetwork")
	procCoTaskMemFree             = modOle32.NewProc("CoTaskMemFree")
)

// nativeNetworkOperations는 호스트 네트워크 서비스의 네트워크 오브젝트 연산을
// computenetwork.dll에 바인딩한 ObjectOperations 구현체입니다.
// UTF-16 문자열 마샬링과 COM 할당 버퍼 해제를 이 계층에서 처리합니다.
type nativeNetworkOperations struct{}

// NewNativeNetworkOperations는 새로운 네이티브 연산 테이블을 생성합니다
func NewNativeNetworkOperations() (interfaces.ObjectOperations, error) {
	if err := modComputeNetwork.Load(); err != nil {
		return nil, errors.NewSystemError("호스트 네트워크 서비스 모듈을 로드할 수 없음", err)
	}
	return &nativeNetworkOperations{}, nil
}

// Open은 식별자로 네트워크를 열고 핸들을 반환합니다
func (o *nativeNetworkOperations) Open(id string) (interfaces.ObjectHandle, string, int64) {
	guid, err := guidFromString(id)
	if err != nil {
		return 0, err.Error(), hresultInvalidArg
	}

	var handle uintptr
	var resultBuffer *uint16
	r1, _, _ := procHcnOpenNetwork.Call(
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(&handle)),
		uintptr(unsafe.Pointer(&resultBuffer)),
	)
	return interfaces.ObjectHandle(handle), takeUTF16(resultBuffer), hresult(r1)
}

// Close는 네트워크 핸들을 해제합니다
func (o *nativeNetworkOperations) Close(handle interfaces.ObjectHandle) int64 {
	r1, _, _ := procHcnCloseNetwork.Call(uintptr(handle))
	return hresult(r1)
}

// Enumerate는 질의 조건에 맞는 네트워크 식별자 목록 JSON을 반환합니다
func (o *nativeNetworkOperations) Enumerate(query string) (string, string, int64) {
	queryPtr, err := windows.UTF16PtrFromString(query)
	if err != nil {
		return "", err.Error(), hresultInvalidArg
	}

	var documentBuffer, resultBuffer *uint16
	r1, _, _ := procHcnEnumerateNetworks.Call(
		uintptr(unsafe.Pointer(queryPtr)),
		uintptr(unsafe.Pointer(&documentBuffer)),
		uintptr(unsafe.Pointer(&resultBuffer)),
	)
	return takeUTF16(documentBuffer), takeUTF16(resultBuffer), hresult(r1)
}

// Query는 열린 네트워크의 속성 JSON을 반환합니다
func (o *nativeNetworkOperations) Query(handle interfaces.ObjectHandle, query string) (string, string, int64) {
	queryPtr, err := windows.UTF16PtrFromString(query)
	if err != nil {
		return "", err.Error(), hresultInvalidArg
	}

	var documentBuffer, resultBuffer *uint16
	r1, _, _ := procHcnQueryNetworkProperties.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(queryPtr)),
		uintptr(unsafe.Pointer(&documentBuffer)),
		uintptr(unsafe.Pointer(&resultBuffer)),
	)
	return takeUTF16(documentBuffer), takeUTF16(resultBuffer), hresult(r1)
}

// Create는 설정 JSON으로 네트워크를 생성하고 핸들을 반환합니다
func (o *nativeNetworkOperations) Create(id string, settings string) (interfaces.ObjectHandle, string, int64) {
	guid, err := guidFromString(id)
	if err != nil {
		return 0, err.Error(), hresultInvalidArg
	}

	settingsPtr, err := windows.UTF16PtrFromString(settings)
	if err != nil {
		return 0, err.Error(), hresultInvalidArg
	}

	var handle uintptr
	var resultBuffer *uint16
	r1, _, _ := procHcnCreateNetwork.Call(
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(settingsPtr)),
		uintptr(unsafe.Pointer(&handle)),
		uintptr(unsafe.Pointer(&resultBuffer)),
	)
	return interfaces.ObjectHandle(handle), takeUTF16(resultBuffer), hresult(r1)
}

// Delete는 식별자로 네트워크를 삭제합니다
func (o *nativeNetworkOperations) Delete(id string) (string, int64) {
	guid, err := guidFromString(id)
	if err != nil {
		return err.Error(), hresultInvalidArg
	}

	var resultBuffer *uint16
	r1, _, _ := procHcnDeleteNetwork.Call(
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(&resultBuffer)),
	)
	return takeUTF16(resultBuffer), hresult(r1)
}

// E_INVALIDARG. 서비스 호출 전에 마샬링이 실패한 경우에 사용합니다.
const hresultInvalidArg = int64(-2147024809)

// hresult는 호출 반환값의 하위 32비트를 부호 있는 상태 코드로 변환합니다
func hresult(r1 uintptr) int64 {
	return int64(int32(uint32(r1)))
}

// guidFromString은 GUID 문자열을 네이티브 GUID 구조체로 변환합니다
func guidFromString(id string) (windows.GUID, error) {
	return windows.GUIDFromString(fmt.Sprintf("{%s}", id))
}

// takeUTF16은 서비스가 COM 힙에 할당한 UTF-16 out 버퍼를 Go 문자열로
// 복사하고 해제합니다. nil 버퍼는 빈 문자열입니다.
func takeUTF16(buffer *uint16) string {
	if buffer == nil {
		return ""
	}
	value := windows.UTF16PtrToString(buffer)
	procCoTaskMemFree.Call(uintptr(unsafe.Pointer(buffer)))
	return value
}
