package storage

// Config represents the application configuration stored in config.json
type Config struct {
	Version  int          `json:"version"`
	Theme    string       `json:"theme"`    // Theme name: "Default", "Dark", "Light", "Cinema", "High Contrast"
	FontSize int          `json:"fontSize"` // 10-32, default 14
	Window   WindowConfig `json:"window"`
	Layout   LayoutConfig `json:"layout"`
	Motion   MotionConfig `json:"motion"`
	Loader   LoaderConfig `json:"loader"`
	Audio    AudioConfig  `json:"audio"`
	Input    InputConfig  `json:"input"`
	Shaders  ShaderConfig `json:"shaders"`
	Catalog  string       `json:"catalog,omitempty"` // Catalog file; empty = catalog.json in the data dir
}

// WindowConfig contains window position and size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	X          *int `json:"x,omitempty"` // nil = OS decides position
	Y          *int `json:"y,omitempty"`
	Fullscreen bool `json:"fullscreen"`
}

// LayoutConfig places tiles on the logical screen
type LayoutConfig struct {
	LaneHeight   float64 `json:"laneHeight"`   // Vertical pitch between lanes
	TilePitch    float64 `json:"tilePitch"`    // Horizontal pitch between tiles
	TileWidth    float64 `json:"tileWidth"`    // Unscaled tile width
	TileHeight   float64 `json:"tileHeight"`   // Tile height before aspect-fit
	OriginX      float64 `json:"originX"`      // Left edge of the first tile
	OriginY      float64 `json:"originY"`      // Top edge of the first lane
	VisibleLanes int     `json:"visibleLanes"` // Lanes shown before scrolling
	VisibleTiles int     `json:"visibleTiles"` // Tiles shown before scrolling
	AspectFit    bool    `json:"aspectFit"`    // Default for tiles that don't say
}

// MotionConfig contains the easing and dirty-tracking thresholds
type MotionConfig struct {
	ScrollDamping float64 `json:"scrollDamping"` // 0-1, fraction of remaining scroll per tick
	ScaleDamping  float64 `json:"scaleDamping"`  // 0-1, fraction of remaining zoom per tick
	FocusScale    float64 `json:"focusScale"`    // Zoom of the focused tile
	ScrollSnap    float64 `json:"scrollSnap"`
	ScaleSnap     float64 `json:"scaleSnap"`
	AspectEpsilon float64 `json:"aspectEpsilon"`
	OffsetEpsilon float64 `json:"offsetEpsilon"`
}

// LoaderConfig contains asset loading settings
type LoaderConfig struct {
	Workers        int  `json:"workers"`        // 1-16 concurrent loads
	TimeoutSeconds int  `json:"timeoutSeconds"` // HTTP timeout
	MaxTextureSize int  `json:"maxTextureSize"` // Longest side after downscale
	DiskCache      bool `json:"diskCache"`      // Mirror downloads under artwork/
}

// AudioConfig contains audio-related settings
type AudioConfig struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// InputConfig contains keyboard overrides. Empty fields use the defaults.
type InputConfig struct {
	Up    string `json:"up,omitempty"`
	Down  string `json:"down,omitempty"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`

	Rumble int `json:"rumble"` // Edge bump vibration: 0=off, 1-4=multiplier, 5=max
}

// ShaderConfig contains shader effect settings
type ShaderConfig struct {
	UIShaders []string `json:"uiShaders"` // Ordered list of shader IDs
}

// Catalog is the lane and tile list stored in catalog.json
type Catalog struct {
	Version int           `json:"version"`
	Lanes   []CatalogLane `json:"lanes"`
}

// CatalogLane is one row of tiles
type CatalogLane struct {
	Title string        `json:"title"`
	Tiles []CatalogTile `json:"tiles"`
}

// CatalogTile is a single poster. Asset is an image URL, a local image,
// or an archive path with an optional "#member".
type CatalogTile struct {
	Title     string `json:"title,omitempty"`
	Asset     string `json:"asset"`
	AspectFit *bool  `json:"aspectFit,omitempty"` // nil = layout default
}

// FontSizePresets lists the available font size options
var FontSizePresets = []int{10, 12, 14, 16, 18, 20, 24, 28, 32}

// ValidFontSize returns the nearest valid preset font size.
func ValidFontSize(size int) int {
	best := FontSizePresets[0]
	for _, p := range FontSizePresets {
		if abs(p-size) < abs(best-size) {
			best = p
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Theme:    "Default",
		FontSize: 14,
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			X:      nil,
			Y:      nil,
		},
		Layout: LayoutConfig{
			LaneHeight:   480,
			TilePitch:    320,
			TileWidth:    300,
			TileHeight:   200,
			OriginX:      50,
			OriginY:      50,
			VisibleLanes: 2,
			VisibleTiles: 5,
			AspectFit:    true,
		},
		Motion: MotionConfig{
			ScrollDamping: 0.1,
			ScaleDamping:  0.15,
			FocusScale:    1.2,
			ScrollSnap:    0.5,
			ScaleSnap:     0.001,
			AspectEpsilon: 0.01,
			OffsetEpsilon: 0.1,
		},
		Loader: LoaderConfig{
			Workers:        2,
			TimeoutSeconds: 10,
			MaxTextureSize: 2048,
			DiskCache:      true,
		},
		Audio: AudioConfig{
			Volume: 1.0,
			Muted:  false,
		},
		Input: InputConfig{
			Rumble: 1,
		},
		Shaders: ShaderConfig{
			UIShaders: []string{},
		},
	}
}

// Demo posters used by the built-in catalog
var demoPosters = []string{
	"https://m.media-amazon.com/images/M/MV5BMTQ4MTczMzY4Nl5BMl5BanBnXkFtZTgwNjEwODk5MDE@._V1_.jpg",
	"https://m.media-amazon.com/images/M/MV5BNDE0MGFkYzktYTMyNS00Mjk1LWI3YzEtYWYxMzAxNTI2YmUyXkEyXkFqcGc@._V1_QL75_UX480_.jpg",
}

// DefaultCatalog returns the demo catalog: 20 lanes of 10 tiles alternating
// between two posters.
func DefaultCatalog() *Catalog {
	c := &Catalog{Version: 1, Lanes: make([]CatalogLane, 20)}
	for row := range c.Lanes {
		tiles := make([]CatalogTile, 10)
		for i := range tiles {
			tiles[i] = CatalogTile{Asset: demoPosters[i%len(demoPosters)]}
		}
		c.Lanes[row] = CatalogLane{Tiles: tiles}
	}
	return c
}
