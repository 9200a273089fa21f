// Package winx hosts the overlay in a native layered Win32 window
package winx

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"perfoverlay/internal/overlay"
)

// The message loop and every window call must stay on the thread that
// created the window.
func init() {
	runtime.LockOSThread()
}

const (
	className = "PerfOverlayWindow"
	timerID   = 1
	padding   = 4
)

var (
	wndProcCallback = windows.NewCallback(wndProc)
	// windows created by this package, keyed by handle; only touched on
	// the locked thread
	byHandle = map[uintptr]*Window{}
)

// Options places and styles the overlay window
type Options struct {
	Title    string
	FontFace string
	FontSize int
	X        int
	Y        int
	Width    int
}

// Window is a borderless overlay window. It implements overlay.Surface.
type Window struct {
	hwnd    uintptr
	opts    Options
	spans   []overlay.Span
	handler overlay.MessageHandler
	logger  *slog.Logger

	regular    uintptr
	bold       uintptr
	background uintptr
}

// NewWindow creates the window hidden. It is shown once the controller
// pins it topmost.
func NewWindow(opts Options, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 16
	}
	if opts.Width <= 0 {
		opts.Width = 640
	}

	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return nil, fmt.Errorf("failed to get module handle: %w", err)
	}

	class, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return nil, err
	}
	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, err
	}

	cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
	wc := wndClassEx{
		style:     csHRedraw | csVRedraw,
		wndProc:   wndProcCallback,
		instance:  uintptr(instance),
		cursor:    cursor,
		className: class,
	}
	wc.size = uint32(unsafe.Sizeof(wc))
	if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		if err != windows.ERROR_CLASS_ALREADY_EXISTS {
			return nil, fmt.Errorf("failed to register window class: %w", callErr(err))
		}
	}

	height := opts.FontSize*2 + padding*2
	hwnd, _, err := procCreateWindowExW.Call(
		wsExToolWindow|wsExNoActivate,
		uintptr(unsafe.Pointer(class)),
		uintptr(unsafe.Pointer(title)),
		wsPopup,
		uintptr(opts.X), uintptr(opts.Y), uintptr(opts.Width), uintptr(height),
		0, 0, uintptr(instance), 0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("failed to create window: %w", callErr(err))
	}

	w := &Window{hwnd: hwnd, opts: opts, logger: logger}
	w.regular = createFont(opts.FontFace, opts.FontSize, fwNormal)
	w.bold = createFont(opts.FontFace, opts.FontSize, fwBold)
	w.background, _, _ = procCreateSolidBrush.Call(colorKey)
	byHandle[hwnd] = w
	return w, nil
}

func createFont(face string, size, weight int) uintptr {
	name, err := windows.UTF16PtrFromString(face)
	if err != nil {
		name = nil
	}
	height := -size
	font, _, _ := procCreateFontW.Call(
		uintptr(height), 0, 0, 0, uintptr(weight),
		0, 0, 0, defaultCharset, 0, 0, nonAntialiased, 0,
		uintptr(unsafe.Pointer(name)),
	)
	return font
}

func (w *Window) Handle() uintptr { return w.hwnd }

func (w *Window) Clear() {
	w.spans = w.spans[:0]
	w.invalidate()
}

func (w *Window) Append(span overlay.Span) {
	w.spans = append(w.spans, span)
	w.invalidate()
}

func (w *Window) SetVisible(visible bool) {
	cmd := uintptr(swHide)
	if visible {
		cmd = swShowNoActivate
	}
	procShowWindow.Call(w.hwnd, cmd)
}

func (w *Window) invalidate() {
	procInvalidateRect.Call(w.hwnd, 0, 1)
}

// Run pumps messages until the window is destroyed or ctx is cancelled.
// It must be called from the goroutine that created the window.
func (w *Window) Run(ctx context.Context, handler overlay.MessageHandler) error {
	w.handler = handler
	if r, _, err := procSetTimer.Call(w.hwnd, timerID, uintptr(overlay.TickInterval.Milliseconds()), 0); r == 0 {
		return fmt.Errorf("failed to start timer: %w", callErr(err))
	}
	defer w.release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			procPostMessageW.Call(w.hwnd, wmClose, 0, 0)
		case <-done:
		}
	}()

	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("message loop failed: %w", callErr(err))
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (w *Window) release() {
	procKillTimer.Call(w.hwnd, timerID)
	for _, obj := range []uintptr{w.regular, w.bold, w.background} {
		if obj != 0 {
			procDeleteObject.Call(obj)
		}
	}
}

func (w *Window) paint() {
	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(w.hwnd, uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer procEndPaint.Call(w.hwnd, uintptr(unsafe.Pointer(&ps)))

	bounds := rect{right: int32(w.opts.Width), bottom: int32(w.opts.FontSize*2 + padding*2)}
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&bounds)), w.background)
	procSetBkMode.Call(hdc, transparentBkMode)
	procSetTextColor.Call(hdc, textColor)

	x := int32(padding)
	for _, span := range w.spans {
		text, err := windows.UTF16FromString(span.Text)
		if err != nil || len(text) <= 1 {
			continue
		}
		n := uintptr(len(text) - 1)

		font := w.regular
		if span.Bold {
			font = w.bold
		}
		old, _, _ := procSelectObject.Call(hdc, font)
		procTextOutW.Call(hdc, uintptr(x), padding, uintptr(unsafe.Pointer(&text[0])), n)
		var extent size
		procGetTextExtentPoint32W.Call(hdc, uintptr(unsafe.Pointer(&text[0])), n, uintptr(unsafe.Pointer(&extent)))
		procSelectObject.Call(hdc, old)
		x += extent.cx
	}
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	if w, ok := byHandle[hwnd]; ok {
		switch uint32(message) {
		case wmTimer:
			if w.handler != nil {
				w.handler.OnTimer()
			}
			return 0
		case wmPaint:
			w.paint()
			return 0
		case wmClose:
			procDestroyWindow.Call(hwnd)
			return 0
		case wmDestroy:
			delete(byHandle, hwnd)
			procPostQuitMessage.Call(0)
			return 0
		default:
			if w.handler != nil && w.handler.OnMessage(uint32(message), wParam, lParam) {
				return 0
			}
		}
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, message, wParam, lParam)
	return r
}
