package javascript

import (
	"image/color"
	"testing"

	"tilescope/overlay"
)

const demoScript = `
name = "Checker";
legend = [
	{name: "Even", color: "#20c05080"},
	{name: "Odd", color: "#c0205080"},
];

function update(view, cursor) {
	var even = [];
	var odd = [];
	for (var y = view.top; y < view.top + view.height; y++) {
		for (var x = view.left; x < view.left + view.width; x++) {
			if ((x + y) % 2 === 0) {
				even.push([x, y]);
			} else {
				odd.push([x, y]);
			}
		}
	}
	return [
		{name: "even", color: "#20c05080", border: "#ffffff", tiles: even},
		{name: "odd", color: "#c0205080", tiles: odd},
	];
}
`

func TestScriptMapBasics(t *testing.T) {
	m, err := NewScriptMap(demoScript, "fallback")
	if err != nil {
		t.Fatalf("NewScriptMap failed: %v", err)
	}

	if got := m.Name(); got != "Checker" {
		t.Errorf("Name() = %q, want %q", got, "Checker")
	}
	legend := m.Legend()
	if len(legend) != 2 {
		t.Fatalf("legend has %d rows, want 2", len(legend))
	}
	if want := (color.RGBA{R: 0x20, G: 0xc0, B: 0x50, A: 0x80}); legend[0].Color != want {
		t.Errorf("legend[0].Color = %v, want %v", legend[0].Color, want)
	}

	visible := overlay.TileRect{Left: 0, Top: 0, Width: 4, Height: 2}
	groups := m.Update(overlay.Location{World: "main"}, visible, overlay.TilePos{X: 1, Y: 1})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if got, want := len(groups[0].Tiles)+len(groups[1].Tiles), 8; got != want {
		t.Fatalf("groups cover %d tiles, want %d", got, want)
	}
	if groups[0].OuterBorderColor == nil {
		t.Error("first group lost its border color")
	}
	if groups[1].OuterBorderColor != nil {
		t.Error("second group gained a border color it never declared")
	}
	if got, want := groups[0].Tiles[0].Color, (color.RGBA{R: 0x20, G: 0xc0, B: 0x50, A: 0x80}); got != want {
		t.Errorf("fill color = %v, want %v", got, want)
	}
}

func TestScriptMapFallbackName(t *testing.T) {
	m, err := NewScriptMap(`function update(v, c) { return []; }`, "from-file")
	if err != nil {
		t.Fatalf("NewScriptMap failed: %v", err)
	}
	if got := m.Name(); got != "from-file" {
		t.Errorf("Name() = %q, want fallback %q", got, "from-file")
	}
}

func TestScriptMapMissingUpdate(t *testing.T) {
	if _, err := NewScriptMap(`name = "broken";`, "x"); err == nil {
		t.Fatal("script without update() was accepted")
	}
}

func TestScriptMapRuntimeErrorDisables(t *testing.T) {
	m, err := NewScriptMap(`function update(v, c) { throw new Error("boom"); }`, "x")
	if err != nil {
		t.Fatalf("NewScriptMap failed: %v", err)
	}
	visible := overlay.TileRect{Width: 1, Height: 1}
	if got := m.Update(overlay.Location{}, visible, overlay.TilePos{}); got != nil {
		t.Fatalf("Update after script error = %v, want nil", got)
	}
	// Stays disabled on subsequent frames.
	if got := m.Update(overlay.Location{}, visible, overlay.TilePos{}); got != nil {
		t.Fatalf("second Update after script error = %v, want nil", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#ff8000", want: color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: "ff8000", want: color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: "#11223344", want: color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) succeeded, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
