package winx

import (
	"fmt"

	"golang.org/x/sys/windows"

	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/overlay"
)

// Chrome edits window styles through user32
type Chrome struct{}

func (Chrome) ExStyle(hwnd uintptr) (uint32, error) {
	style, err := getWindowLong(hwnd, gwlExStyle)
	if err != nil {
		return 0, fmt.Errorf("GetWindowLongPtr: %w", err)
	}
	return uint32(style), nil
}

// SetExStyle writes the extended style. A layered window also gets its
// background color keyed out.
func (Chrome) SetExStyle(hwnd uintptr, style uint32) error {
	if err := setWindowLong(hwnd, gwlExStyle, uintptr(style)); err != nil {
		return fmt.Errorf("SetWindowLongPtr: %w", err)
	}
	if style&overlay.WSExLayered != 0 {
		if r, _, err := procSetLayeredWindowAttributes.Call(hwnd, colorKey, 0, lwaColorKey); r == 0 {
			return fmt.Errorf("SetLayeredWindowAttributes: %w", callErr(err))
		}
	}
	return nil
}

func (Chrome) SetTopmost(hwnd uintptr) error {
	r, _, err := procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoSize|swpNoMove|swpShowWindow)
	if r == 0 {
		return fmt.Errorf("SetWindowPos: %w", callErr(err))
	}
	return nil
}

// Binder registers system-wide hotkeys
type Binder struct{}

func (Binder) RegisterHotKey(hwnd uintptr, id int, modifiers hotkey.Modifier, key uint32) error {
	if r, _, err := procRegisterHotKey.Call(hwnd, uintptr(id), uintptr(modifiers), uintptr(key)); r == 0 {
		return callErr(err)
	}
	return nil
}

func (Binder) UnregisterHotKey(hwnd uintptr, id int) error {
	if r, _, err := procUnregisterHotKey.Call(hwnd, uintptr(id)); r == 0 {
		return callErr(err)
	}
	return nil
}

// Notifier shows a warning message box
type Notifier struct {
	Caption string
}

func (n Notifier) Notify(message string) {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	caption, _ := windows.UTF16PtrFromString(n.Caption)
	windows.MessageBox(0, text, caption, windows.MB_OK|windows.MB_ICONWARNING)
}
