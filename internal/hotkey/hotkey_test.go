package hotkey

import (
	"errors"
	"testing"
)

type fakeWindow uintptr

func (w fakeWindow) Handle() uintptr { return uintptr(w) }

type binding struct {
	hwnd      uintptr
	id        int
	modifiers Modifier
	key       uint32
}

type fakeBinder struct {
	bound       map[int]binding
	registerErr error
	unregisters int
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bound: make(map[int]binding)}
}

func (b *fakeBinder) RegisterHotKey(hwnd uintptr, id int, modifiers Modifier, key uint32) error {
	if b.registerErr != nil {
		return b.registerErr
	}
	b.bound[id] = binding{hwnd: hwnd, id: id, modifiers: modifiers, key: key}
	return nil
}

func (b *fakeBinder) UnregisterHotKey(hwnd uintptr, id int) error {
	b.unregisters++
	delete(b.bound, id)
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func TestRegisterAndDispatch(t *testing.T) {
	binder := newFakeBinder()
	registry := NewRegistry()
	registrar := NewRegistrar(1, fakeWindow(0x1234), binder, registry, nil, nil)

	fired := 0
	if err := registrar.Register(0x79, ModNone, func() { fired++ }); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := binder.bound[1]
	if !ok {
		t.Fatal("binder has no binding for id 1")
	}
	if got.hwnd != 0x1234 || got.key != 0x79 || got.modifiers != ModNone {
		t.Errorf("binding = %+v", got)
	}

	if !registrar.HandleMessage(WMHotkey, 1) {
		t.Error("HandleMessage(WMHotkey, 1) = false, want true")
	}
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}

	if registrar.HandleMessage(WMHotkey, 2) {
		t.Error("HandleMessage with foreign id consumed the message")
	}
	if registrar.HandleMessage(0x0113, 1) {
		t.Error("HandleMessage with WM_TIMER consumed the message")
	}
	if fired != 1 {
		t.Errorf("callback fired %d times after foreign messages, want 1", fired)
	}
}

func TestRegisterInvalidHandle(t *testing.T) {
	binder := newFakeBinder()
	notifier := &fakeNotifier{}
	registrar := NewRegistrar(1, fakeWindow(0), binder, NewRegistry(), notifier, nil)

	err := registrar.Register(0x79, ModNone, func() {})
	if !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Register error = %v, want ErrInvalidHandle", err)
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notices shown = %d, want 1", len(notifier.messages))
	}
	if len(binder.bound) != 0 {
		t.Error("binder was called despite invalid handle")
	}
	if err := registrar.Unregister(); err != nil {
		t.Errorf("Unregister after failed Register: %v", err)
	}
	if binder.unregisters != 0 {
		t.Errorf("binder unregisters = %d, want 0", binder.unregisters)
	}
}

func TestRegisterRefusedByOS(t *testing.T) {
	osErr := errors.New("Hot key is already registered.")
	binder := newFakeBinder()
	binder.registerErr = osErr
	registry := NewRegistry()
	registrar := NewRegistrar(1, fakeWindow(0x10), binder, registry, nil, nil)

	err := registrar.Register(0x79, ModControl, func() {})
	if !errors.Is(err, ErrRegisterFailed) {
		t.Errorf("Register error = %v, want ErrRegisterFailed", err)
	}
	if !errors.Is(err, osErr) {
		t.Errorf("Register error = %v, want it to wrap the OS error", err)
	}
	if registry.Len() != 0 {
		t.Error("callback bound although the OS refused the hotkey")
	}
	if registrar.HandleMessage(WMHotkey, 1) {
		t.Error("HandleMessage consumed a hotkey that was never bound")
	}
	if err := registrar.Unregister(); err != nil {
		t.Errorf("Unregister: %v", err)
	}
	if binder.unregisters != 0 {
		t.Errorf("binder unregisters = %d, want 0", binder.unregisters)
	}
}

func TestUnregisterNeverRegistered(t *testing.T) {
	binder := newFakeBinder()
	registrar := NewRegistrar(1, fakeWindow(0x10), binder, NewRegistry(), nil, nil)
	if err := registrar.Unregister(); err != nil {
		t.Errorf("Unregister: %v", err)
	}
	if binder.unregisters != 0 {
		t.Errorf("binder unregisters = %d, want 0", binder.unregisters)
	}
}

func TestUnregisterReleasesBinding(t *testing.T) {
	binder := newFakeBinder()
	registry := NewRegistry()
	registrar := NewRegistrar(7, fakeWindow(0x10), binder, registry, nil, nil)

	if err := registrar.Register(0x79, ModNone, func() {}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registrar.Unregister(); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if len(binder.bound) != 0 || registry.Len() != 0 {
		t.Errorf("binding survived Unregister: binder=%v registry=%d", binder.bound, registry.Len())
	}
	if err := registrar.Unregister(); err != nil {
		t.Errorf("second Unregister: %v", err)
	}
	if binder.unregisters != 1 {
		t.Errorf("binder unregisters = %d, want 1", binder.unregisters)
	}
}

func TestRegisterTwiceReplacesCallback(t *testing.T) {
	binder := newFakeBinder()
	registrar := NewRegistrar(1, fakeWindow(0x10), binder, NewRegistry(), nil, nil)

	var calls []string
	registrar.Register(0x79, ModNone, func() { calls = append(calls, "first") })
	registrar.Register(0x78, ModAlt, func() { calls = append(calls, "second") })

	registrar.HandleMessage(WMHotkey, 1)
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}
	if got := binder.bound[1]; got.key != 0x78 || got.modifiers != ModAlt {
		t.Errorf("binding = %+v, want F9 with alt", got)
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry.Dispatch(1) {
		t.Error("Dispatch on empty registry reported a callback")
	}

	hits := map[int]int{}
	registry.Set(1, func() { hits[1]++ })
	registry.Set(2, func() { hits[2]++ })
	registry.Dispatch(2)
	registry.Dispatch(2)
	registry.Dispatch(1)
	if hits[1] != 1 || hits[2] != 2 {
		t.Errorf("hits = %v", hits)
	}

	registry.Clear(2)
	if registry.Dispatch(2) {
		t.Error("Dispatch after Clear reported a callback")
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
}
