package winx

import (
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW           = user32.NewProc("RegisterClassExW")
	procCreateWindowExW            = user32.NewProc("CreateWindowExW")
	procDefWindowProcW             = user32.NewProc("DefWindowProcW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procGetMessageW                = user32.NewProc("GetMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessageW           = user32.NewProc("DispatchMessageW")
	procPostMessageW               = user32.NewProc("PostMessageW")
	procPostQuitMessage            = user32.NewProc("PostQuitMessage")
	procSetTimer                   = user32.NewProc("SetTimer")
	procKillTimer                  = user32.NewProc("KillTimer")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procGetWindowLongPtrW          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongW             = user32.NewProc("GetWindowLongW")
	procSetWindowLongW             = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procRegisterHotKey             = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey           = user32.NewProc("UnregisterHotKey")
	procBeginPaint                 = user32.NewProc("BeginPaint")
	procEndPaint                   = user32.NewProc("EndPaint")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
	procFillRect                   = user32.NewProc("FillRect")
	procLoadCursorW                = user32.NewProc("LoadCursorW")

	procCreateFontW           = gdi32.NewProc("CreateFontW")
	procCreateSolidBrush      = gdi32.NewProc("CreateSolidBrush")
	procSelectObject          = gdi32.NewProc("SelectObject")
	procDeleteObject          = gdi32.NewProc("DeleteObject")
	procSetBkMode             = gdi32.NewProc("SetBkMode")
	procSetTextColor          = gdi32.NewProc("SetTextColor")
	procTextOutW              = gdi32.NewProc("TextOutW")
	procGetTextExtentPoint32W = gdi32.NewProc("GetTextExtentPoint32W")

	procSetLastError = kernel32.NewProc("SetLastError")
)

const (
	wmDestroy = 0x0002
	wmPaint   = 0x000F
	wmClose   = 0x0010
	wmTimer   = 0x0113

	wsPopup          = 0x80000000
	wsExToolWindow   = 0x00000080
	wsExNoActivate   = 0x08000000
	csHRedraw        = 0x0002
	csVRedraw        = 0x0001
	idcArrow         = 32512
	swHide           = 0
	swShowNoActivate = 4

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpShowWindow = 0x0040

	lwaColorKey = 0x00000001

	fwNormal          = 400
	fwBold            = 700
	defaultCharset    = 1
	nonAntialiased    = 3
	transparentBkMode = 1

	// colorKey is painted as background and made fully transparent
	colorKey  = 0x00000000
	textColor = 0x00FFFFFF
)

var (
	gwlExStyle  = -20
	hwndTopmost = ^uintptr(0)
)

type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   uintptr
	icon       uintptr
	cursor     uintptr
	background uintptr
	menuName   *uint16
	className  *uint16
	iconSm     uintptr
}

type point struct {
	x, y int32
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
	private uint32
}

type rect struct {
	left, top, right, bottom int32
}

type paintStruct struct {
	hdc         uintptr
	erase       int32
	paint       rect
	restore     int32
	incUpdate   int32
	rgbReserved [32]byte
}

type size struct {
	cx, cy int32
}

// callErr turns the error of a failed proc call into a usable error;
// a zero errno still means failure when the return value says so
func callErr(err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		return syscall.EINVAL
	}
	return err
}

func getWindowLong(hwnd uintptr, index int) (uintptr, error) {
	proc := procGetWindowLongPtrW
	if proc.Find() != nil {
		proc = procGetWindowLongW
	}
	procSetLastError.Call(0)
	r, _, err := proc.Call(hwnd, uintptr(index))
	if r == 0 {
		if errno, ok := err.(syscall.Errno); ok && errno != 0 {
			return 0, errno
		}
	}
	return r, nil
}

func setWindowLong(hwnd uintptr, index int, value uintptr) error {
	proc := procSetWindowLongPtrW
	if proc.Find() != nil {
		proc = procSetWindowLongW
	}
	procSetLastError.Call(0)
	r, _, err := proc.Call(hwnd, uintptr(index), value)
	if r == 0 {
		if errno, ok := err.(syscall.Errno); ok && errno != 0 {
			return errno
		}
	}
	return nil
}
