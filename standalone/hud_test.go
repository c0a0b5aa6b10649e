package standalone

import (
	"strings"
	"testing"

	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/storage"
	"github.com/user-none/lanegrid/texcache"
)

func TestStatusText(t *testing.T) {
	catalog := &storage.Catalog{Version: 1, Lanes: []storage.CatalogLane{
		{Title: "Movies", Tiles: []storage.CatalogTile{
			{Asset: "a", Title: "Alpha"},
			{Asset: "b"},
		}},
		{Tiles: []storage.CatalogTile{{Asset: "c"}}},
		{Title: "Empty"},
	}}
	g, err := buildGrid(catalog, storage.DefaultConfig())
	if err != nil {
		t.Fatalf("buildGrid failed: %v", err)
	}

	tests := []struct {
		name      string
		moves     []focus.Direction
		stats     texcache.Stats
		wantLeft  string
		wantRight string
	}{
		{"first tile with title", nil, texcache.Stats{}, "Movies (1/3): Alpha", "tile 1/2"},
		{"untitled tile", []focus.Direction{focus.DirRight}, texcache.Stats{Pending: 2}, "Movies (1/3)", "tile 2/2 | loading 2"},
		{"untitled lane", []focus.Direction{focus.DirDown}, texcache.Stats{Failed: 1}, "Lane 2 (2/3)", "tile 1/1 | failed 1"},
		{"empty lane", []focus.Direction{focus.DirDown}, texcache.Stats{}, "Empty (3/3)", "no tiles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range tt.moves {
				g.HandleInput(d)
			}
			left, right := statusText(g, tt.stats)
			if left != tt.wantLeft {
				t.Errorf("left = %q, want %q", left, tt.wantLeft)
			}
			if right != tt.wantRight {
				t.Errorf("right = %q, want %q", right, tt.wantRight)
			}
		})
	}
}

func TestStatusTextNilGrid(t *testing.T) {
	if l, r := statusText(nil, texcache.Stats{}); l != "" || r != "" {
		t.Errorf("statusText(nil) = %q, %q", l, r)
	}
}

func TestHelpRowsShowBindings(t *testing.T) {
	rows := helpRows(BuildBindings(storage.InputConfig{Left: "J"}))
	if len(rows) == 0 {
		t.Fatal("no help rows")
	}
	if got := rows[0][0]; got != "Arrows / W J S D" {
		t.Errorf("move row = %q, want %q", got, "Arrows / W J S D")
	}
	found := false
	for _, r := range rows {
		if strings.HasSuffix(r[0], "+C") {
			found = true
		}
	}
	if !found {
		t.Error("copy shortcut missing from help")
	}
}
