package hotkey

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "F10", want: 0x79},
		{in: "f1", want: 0x70},
		{in: "F24", want: 0x87},
		{in: "a", want: 'A'},
		{in: "7", want: '7'},
		{in: "Insert", want: 0x2D},
		{in: " scrolllock ", want: 0x91},
		{in: "F25", wantErr: true},
		{in: "F0", wantErr: true},
		{in: "Escape", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	got, err := ParseModifiers([]string{"Ctrl", "alt", "SHIFT", "win"})
	if err != nil {
		t.Fatal(err)
	}
	if got != ModControl|ModAlt|ModShift|ModWin {
		t.Errorf("mask = %#x", got)
	}

	if got, err := ParseModifiers(nil); err != nil || got != ModNone {
		t.Errorf("ParseModifiers(nil) = %#x, %v", got, err)
	}
	if _, err := ParseModifiers([]string{"hyper"}); err == nil {
		t.Error("ParseModifiers(hyper) succeeded")
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key       uint32
		modifiers Modifier
		want      string
	}{
		{0x79, ModNone, "f10"},
		{0x79, ModControl | ModAlt, "alt+ctrl+f10"},
		{'A', ModControl | ModAlt | ModShift, "alt+ctrl+shift+a"},
		{'P', ModShift, "shift+p"},
		{0x2D, ModNone, "insert"},
		{0xFF, ModNone, "vk0xff"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.key, tt.modifiers); got != tt.want {
			t.Errorf("KeyName(%#x, %#x) = %q, want %q", tt.key, tt.modifiers, got, tt.want)
		}
	}
}
