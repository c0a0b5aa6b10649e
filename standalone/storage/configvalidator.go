package storage

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Keys checked per config section. Only non-omitempty fields with
// validation rules are listed.
var sectionKeys = map[string][]string{
	"window": {"width", "height"},
	"layout": {"laneHeight", "tilePitch", "tileWidth", "tileHeight", "originX", "originY",
		"visibleLanes", "visibleTiles", "aspectFit"},
	"motion": {"scrollDamping", "scaleDamping", "focusScale", "scrollSnap", "scaleSnap",
		"aspectEpsilon", "offsetEpsilon"},
	"loader": {"workers", "timeoutSeconds", "maxTextureSize", "diskCache"},
	"audio":  {"volume"},
	"input":  {"rumble"},
}

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path keys
// (e.g., "audio.volume", "layout.laneHeight").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	for _, k := range []string{"version", "theme", "fontSize"} {
		if _, ok := raw[k]; ok {
			present[k] = true
		}
	}

	for section, keys := range sectionKeys {
		sectionRaw, ok := raw[section]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if json.Unmarshal(sectionRaw, &fields) != nil {
			continue
		}
		for _, k := range keys {
			if _, ok := fields[k]; ok {
				present[section+"."+k] = true
			}
		}
	}

	return present
}

// ApplyMissingDefaults sets default values for config fields that are absent
// from the JSON file. Only truly missing fields get defaults, preserving
// intentional zero values (e.g., volume=0, aspectFit=false).
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	d := DefaultConfig()

	setInt := func(key string, dst *int, def int) {
		if !presentKeys[key] {
			*dst = def
		}
	}
	setFloat := func(key string, dst *float64, def float64) {
		if !presentKeys[key] {
			*dst = def
		}
	}
	setBool := func(key string, dst *bool, def bool) {
		if !presentKeys[key] {
			*dst = def
		}
	}

	setInt("version", &config.Version, d.Version)
	if !presentKeys["theme"] {
		config.Theme = d.Theme
	}
	setInt("fontSize", &config.FontSize, d.FontSize)

	setInt("window.width", &config.Window.Width, d.Window.Width)
	setInt("window.height", &config.Window.Height, d.Window.Height)

	setFloat("layout.laneHeight", &config.Layout.LaneHeight, d.Layout.LaneHeight)
	setFloat("layout.tilePitch", &config.Layout.TilePitch, d.Layout.TilePitch)
	setFloat("layout.tileWidth", &config.Layout.TileWidth, d.Layout.TileWidth)
	setFloat("layout.tileHeight", &config.Layout.TileHeight, d.Layout.TileHeight)
	setFloat("layout.originX", &config.Layout.OriginX, d.Layout.OriginX)
	setFloat("layout.originY", &config.Layout.OriginY, d.Layout.OriginY)
	setInt("layout.visibleLanes", &config.Layout.VisibleLanes, d.Layout.VisibleLanes)
	setInt("layout.visibleTiles", &config.Layout.VisibleTiles, d.Layout.VisibleTiles)
	setBool("layout.aspectFit", &config.Layout.AspectFit, d.Layout.AspectFit)

	setFloat("motion.scrollDamping", &config.Motion.ScrollDamping, d.Motion.ScrollDamping)
	setFloat("motion.scaleDamping", &config.Motion.ScaleDamping, d.Motion.ScaleDamping)
	setFloat("motion.focusScale", &config.Motion.FocusScale, d.Motion.FocusScale)
	setFloat("motion.scrollSnap", &config.Motion.ScrollSnap, d.Motion.ScrollSnap)
	setFloat("motion.scaleSnap", &config.Motion.ScaleSnap, d.Motion.ScaleSnap)
	setFloat("motion.aspectEpsilon", &config.Motion.AspectEpsilon, d.Motion.AspectEpsilon)
	setFloat("motion.offsetEpsilon", &config.Motion.OffsetEpsilon, d.Motion.OffsetEpsilon)

	setInt("loader.workers", &config.Loader.Workers, d.Loader.Workers)
	setInt("loader.timeoutSeconds", &config.Loader.TimeoutSeconds, d.Loader.TimeoutSeconds)
	setInt("loader.maxTextureSize", &config.Loader.MaxTextureSize, d.Loader.MaxTextureSize)
	setBool("loader.diskCache", &config.Loader.DiskCache, d.Loader.DiskCache)

	setFloat("audio.volume", &config.Audio.Volume, d.Audio.Volume)
	setInt("input.rumble", &config.Input.Rumble, d.Input.Rumble)

	if config.Shaders.UIShaders == nil {
		config.Shaders.UIShaders = []string{}
	}
}

// configRule is a single validation: ok reports whether the field is valid,
// describe formats the complaint, and reset restores the default.
type configRule struct {
	ok       func(c *Config) bool
	describe func(c *Config) string
	reset    func(c, d *Config)
}

func floatRange(name string, field func(c *Config) *float64, lo, hi float64, loOpen bool) configRule {
	return configRule{
		ok: func(c *Config) bool {
			v := *field(c)
			if loOpen && v <= lo {
				return false
			}
			return v >= lo && v <= hi
		},
		describe: func(c *Config) string {
			open := "["
			if loOpen {
				open = "("
			}
			return fmt.Sprintf("%s: %g (valid: %s%g-%g])", name, *field(c), open, lo, hi)
		},
		reset: func(c, d *Config) { *field(c) = *field(d) },
	}
}

func intRange(name string, field func(c *Config) *int, lo, hi int) configRule {
	return configRule{
		ok: func(c *Config) bool {
			v := *field(c)
			return v >= lo && v <= hi
		},
		describe: func(c *Config) string {
			return fmt.Sprintf("%s: %d (valid: %d-%d)", name, *field(c), lo, hi)
		},
		reset: func(c, d *Config) { *field(c) = *field(d) },
	}
}

func configRules(validThemes []string) []configRule {
	return []configRule{
		{
			ok:       func(c *Config) bool { return c.Version == 1 },
			describe: func(c *Config) string { return fmt.Sprintf("version: %d (valid: 1)", c.Version) },
			reset:    func(c, d *Config) { c.Version = d.Version },
		},
		{
			ok: func(c *Config) bool { return slices.Contains(validThemes, c.Theme) },
			describe: func(c *Config) string {
				return fmt.Sprintf("theme: %q (valid: %v)", c.Theme, validThemes)
			},
			reset: func(c, d *Config) { c.Theme = d.Theme },
		},
		{
			ok: func(c *Config) bool { return slices.Contains(FontSizePresets, c.FontSize) },
			describe: func(c *Config) string {
				return fmt.Sprintf("fontSize: %d (valid: %v)", c.FontSize, FontSizePresets)
			},
			reset: func(c, d *Config) { c.FontSize = d.FontSize },
		},
		intRange("window.width", func(c *Config) *int { return &c.Window.Width }, 640, 16384),
		intRange("window.height", func(c *Config) *int { return &c.Window.Height }, 400, 16384),
		floatRange("layout.laneHeight", func(c *Config) *float64 { return &c.Layout.LaneHeight }, 0, 4096, true),
		floatRange("layout.tilePitch", func(c *Config) *float64 { return &c.Layout.TilePitch }, 0, 4096, true),
		floatRange("layout.tileWidth", func(c *Config) *float64 { return &c.Layout.TileWidth }, 0, 4096, true),
		floatRange("layout.tileHeight", func(c *Config) *float64 { return &c.Layout.TileHeight }, 0, 4096, true),
		floatRange("layout.originX", func(c *Config) *float64 { return &c.Layout.OriginX }, 0, 4096, false),
		floatRange("layout.originY", func(c *Config) *float64 { return &c.Layout.OriginY }, 0, 4096, false),
		intRange("layout.visibleLanes", func(c *Config) *int { return &c.Layout.VisibleLanes }, 1, 32),
		intRange("layout.visibleTiles", func(c *Config) *int { return &c.Layout.VisibleTiles }, 1, 64),
		floatRange("motion.scrollDamping", func(c *Config) *float64 { return &c.Motion.ScrollDamping }, 0, 1, true),
		floatRange("motion.scaleDamping", func(c *Config) *float64 { return &c.Motion.ScaleDamping }, 0, 1, true),
		floatRange("motion.focusScale", func(c *Config) *float64 { return &c.Motion.FocusScale }, 0, 4, true),
		floatRange("motion.scrollSnap", func(c *Config) *float64 { return &c.Motion.ScrollSnap }, 0, 100, false),
		floatRange("motion.scaleSnap", func(c *Config) *float64 { return &c.Motion.ScaleSnap }, 0, 1, false),
		floatRange("motion.aspectEpsilon", func(c *Config) *float64 { return &c.Motion.AspectEpsilon }, 0, 100, false),
		floatRange("motion.offsetEpsilon", func(c *Config) *float64 { return &c.Motion.OffsetEpsilon }, 0, 100, false),
		intRange("loader.workers", func(c *Config) *int { return &c.Loader.Workers }, 1, 16),
		intRange("loader.timeoutSeconds", func(c *Config) *int { return &c.Loader.TimeoutSeconds }, 1, 300),
		intRange("loader.maxTextureSize", func(c *Config) *int { return &c.Loader.MaxTextureSize }, 64, 16384),
		floatRange("audio.volume", func(c *Config) *float64 { return &c.Audio.Volume }, 0, 2, false),
		intRange("input.rumble", func(c *Config) *int { return &c.Input.Rumble }, 0, 5),
	}
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
// validThemes should be the list of known theme names.
func ValidateConfig(config *Config, validThemes []string) []string {
	var errors []string
	for _, r := range configRules(validThemes) {
		if !r.ok(config) {
			errors = append(errors, r.describe(config))
		}
	}
	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Valid fields are preserved. validThemes should be the list of known theme names.
func CorrectConfig(config *Config, validThemes []string) *Config {
	defaults := DefaultConfig()
	for _, r := range configRules(validThemes) {
		if !r.ok(config) {
			r.reset(config, defaults)
		}
	}
	return config
}
