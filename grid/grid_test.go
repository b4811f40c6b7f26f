package grid

import "testing"

func TestMatrixButtonRoundTrip(t *testing.T) {
	for y := 0; y < MatrixHeight; y++ {
		for x := 0; x <= PageColumn; x++ {
			note := MatrixButtonID(x, y)
			if gx, gy := XForMatrixNote(note), YForMatrixNote(note); gx != x || gy != y {
				t.Errorf("(%d,%d) -> note %d -> (%d,%d)", x, y, note, gx, gy)
			}
		}
	}
}

func TestButtonClassification(t *testing.T) {
	tests := []struct {
		note   uint8
		page   bool
		matrix bool
	}{
		{note: 0x00, matrix: true},
		{note: 0x77, matrix: true},
		{note: 0x08, page: true},
		{note: 0x78, page: true},
		{note: 0x09},
		{note: 0x0F},
		{note: 0x80},
	}
	for _, tt := range tests {
		if got := IsPageNote(tt.note); got != tt.page {
			t.Errorf("IsPageNote(%#x) = %v, want %v", tt.note, got, tt.page)
		}
		if got := IsMatrixNote(tt.note); got != tt.matrix {
			t.Errorf("IsMatrixNote(%#x) = %v, want %v", tt.note, got, tt.matrix)
		}
	}
	if PageButtonID(3) != 0x38 {
		t.Errorf("PageButtonID(3) = %#x, want 0x38", PageButtonID(3))
	}
}

func TestCtrlButtonIDs(t *testing.T) {
	for x := 0; x < CtrlButtons; x++ {
		cc := CtrlButtonID(x)
		if !IsCtrlCC(cc) {
			t.Errorf("IsCtrlCC(%#x) = false", cc)
		}
		if XForCtrlCC(cc) != x {
			t.Errorf("XForCtrlCC(%#x) = %d, want %d", cc, XForCtrlCC(cc), x)
		}
	}
	if CtrlButtonID(0) != 104 {
		t.Errorf("CtrlButtonID(0) = %d, want 104", CtrlButtonID(0))
	}
	if IsCtrlCC(0x67) || IsCtrlCC(0x70) {
		t.Error("CCs outside 0x68-0x6F must not be ctrl buttons")
	}
}

func TestRect(t *testing.T) {
	r := NewRect(0, 0, 8, 2).Translated(0, 6)
	if r != (Rect{X: 0, Y: 6, W: 8, H: 2}) {
		t.Fatalf("Translated = %v", r)
	}
	if lx, ly, ok := r.Local(3, 7); !ok || lx != 3 || ly != 1 {
		t.Errorf("Local(3,7) = %d,%d,%v", lx, ly, ok)
	}
	if _, _, ok := r.Local(3, 5); ok {
		t.Error("Local(3,5) should be outside")
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := NewRect(4, 0, 5, 2).Validate(); err == nil {
		t.Error("rect wider than the matrix should fail validation")
	}
	if err := NewRect(0, 0, 0, 2).Validate(); err == nil {
		t.Error("empty rect should fail validation")
	}
	if !NewRect(0, 0, 4, 6).Overlaps(NewRect(3, 5, 2, 2)) {
		t.Error("expected overlap")
	}
	if NewRect(0, 0, 4, 6).Overlaps(NewRect(4, 0, 4, 6)) {
		t.Error("adjacent rects must not overlap")
	}
}

func TestColorLevels(t *testing.T) {
	tests := []struct {
		c           Color
		red, green int
	}{
		{LEDOff, 0, 0},
		{Red1, 1, 0},
		{Red3, 3, 0},
		{Green2, 0, 2},
		{Red1 + Green1, 1, 1},
		{Red2 + Green3, 2, 3},
		{Amber, 3, 3},
	}
	for _, tt := range tests {
		r, g := tt.c.Levels()
		if r != tt.red || g != tt.green {
			t.Errorf("%d.Levels() = %d,%d want %d,%d", tt.c, r, g, tt.red, tt.green)
		}
		if tt.c != LEDOff && Mix(tt.red, tt.green) != tt.c {
			t.Errorf("Mix(%d,%d) = %d, want %d", tt.red, tt.green, Mix(tt.red, tt.green), tt.c)
		}
	}
	if Mix(0, 0) != LEDOff {
		t.Errorf("Mix(0,0) = %d, want LEDOff", Mix(0, 0))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		err  bool
	}{
		{in: "off", want: LEDOff},
		{in: "red3", want: Red3},
		{in: "Green1", want: Green1},
		{in: "green3+red3", want: Amber},
		{in: "red1 + green2", want: Red1 + Green2},
		{in: "53", want: 53},
		{in: "amber", want: Amber},
		{in: "red4", err: true},
		{in: "red1+red2", err: true},
		{in: "blue", err: true},
		{in: "200", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("ParseColor(%q) = %d, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	for _, c := range []Color{LEDOff, Red2, Green3, Amber, Red1 + Green2} {
		back, err := ParseColor(c.String())
		if err != nil || back != c {
			t.Errorf("%d -> %q -> %d, %v", c, c.String(), back, err)
		}
	}
	if Color(0).String() != "0" {
		t.Errorf("Color(0).String() = %q", Color(0).String())
	}
}
