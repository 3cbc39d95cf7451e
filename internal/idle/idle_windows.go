package idle

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	pGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	pGetTickCount64   = kernel32.NewProc("GetTickCount64")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// IdleSeconds returns the number of seconds since the last keyboard or
// mouse input on Windows.
func IdleSeconds() (float64, error) {
	lii := lastInputInfo{}
	lii.cbSize = uint32(unsafe.Sizeof(lii))
	if r, _, err := pGetLastInputInfo.Call(uintptr(unsafe.Pointer(&lii))); r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}

	// dwTime wraps every ~49.7 days; compare in the low 32 bits.
	now, _, _ := pGetTickCount64.Call()
	idleMs := uint32(uint64(now)) - lii.dwTime
	return float64(idleMs) / 1000.0, nil
}
