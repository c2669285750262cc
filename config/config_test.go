package config

import (
	"os"
	"path/filepath"
	"testing"
)

// snapshot restores the globals after a test mutates them.
func snapshot(t *testing.T) {
	t.Helper()
	window, entity, maps, camera := Window, Entity, Maps, Camera
	t.Cleanup(func() {
		Window, Entity, Maps, Camera = window, entity, maps, camera
	})
}

func TestDefaults(t *testing.T) {
	if Entity.FrameWidth != 16 || Entity.FrameHeight != 16 {
		t.Fatalf("frame = %dx%d, want 16x16", Entity.FrameWidth, Entity.FrameHeight)
	}
	if Maps.DefaultMap != MapTown {
		t.Fatalf("default map = %q, want %q", Maps.DefaultMap, MapTown)
	}
	for _, id := range []string{MapTopWorld, MapTown, MapCastleOfDoom} {
		if Maps.Table[id] == "" {
			t.Fatalf("map table misses %s", id)
		}
	}
}

func TestApplyOverlay(t *testing.T) {
	snapshot(t)

	doc := []byte(`
window:
  title: Test
entity:
  velocity_x: 4
maps:
  table:
    DUNGEON: maps/dungeon.tmx
  default_map: DUNGEON
`)
	if err := Apply(doc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if Window.Title != "Test" || Window.Width != 800 {
		t.Fatalf("window = %+v, want title overlaid and width kept", Window)
	}
	if Entity.VelocityX != 4 || Entity.VelocityY != 2 {
		t.Fatalf("velocity = (%v,%v), want (4,2)", Entity.VelocityX, Entity.VelocityY)
	}
	if Maps.Table["DUNGEON"] != "maps/dungeon.tmx" || Maps.Table[MapTown] == "" {
		t.Fatalf("table = %v, want DUNGEON merged into defaults", Maps.Table)
	}
}

func TestApplyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "entity: [1, 2"},
		{name: "zero frame", doc: "entity:\n  frame_width: 0\n"},
		{name: "too few rows", doc: "entity:\n  sheet_rows: 3\n"},
		{name: "negative frame duration", doc: "entity:\n  frame_duration: -1\n"},
		{name: "zero clock wrap", doc: "entity:\n  frame_clock_wrap: 0\n"},
		{name: "unknown default map", doc: "maps:\n  default_map: NOWHERE\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snapshot(t)
			before := Entity
			tableSize := len(Maps.Table)

			if err := Apply([]byte(tc.doc)); err == nil {
				t.Fatal("expected an error")
			}
			if Entity != before || len(Maps.Table) != tableSize || Maps.DefaultMap != MapTown {
				t.Fatal("rejected overlay changed the globals")
			}
		})
	}
}

func TestApplyDoesNotShareTable(t *testing.T) {
	snapshot(t)
	previous := Maps.Table

	if err := Apply([]byte("maps:\n  table:\n    EXTRA: maps/extra.tmx\n")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := previous["EXTRA"]; ok {
		t.Fatal("overlay wrote into the previous table")
	}
}

func TestLoad(t *testing.T) {
	snapshot(t)

	path := filepath.Join(t.TempDir(), "bludbourne.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  zoom: 3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Camera.Zoom != 3 || Camera.FadeDuration != 0.5 {
		t.Fatalf("camera = %+v, want zoom 3 and default fade", Camera)
	}

	if err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestActionNames(t *testing.T) {
	for a := ActionNone + 1; a < ActionCount; a++ {
		if a.String() == "" {
			t.Fatalf("action %d has no name", int(a))
		}
	}
	if !ActionSelect.IsMouse() || !ActionAct.IsMouse() || ActionMoveLeft.IsMouse() {
		t.Fatal("pointer intents misclassified")
	}
}
