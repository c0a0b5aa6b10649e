package shader

// ShaderInfo describes an available shader effect
type ShaderInfo struct {
	ID          string // Unique identifier used in config
	Name        string // Display name for UI
	Description string // Brief description of the effect
	Weight      int    // Higher weight = applied earlier in chain
	Preprocess  bool   // True for effects that are not Kage passes (trails)
}

// AvailableShaders lists all shaders that can be enabled
var AvailableShaders = []ShaderInfo{
	{
		ID:          "trails",
		Name:        "Motion Trails",
		Description: "Scrolling posters leave a fading trail",
		Preprocess:  true,
	},
	{
		ID:          "vignette",
		Name:        "Vignette",
		Description: "Darkens the screen edges toward the corners",
		Weight:      100,
	},
	{
		ID:          "scanlines",
		Name:        "Scanlines",
		Description: "Horizontal scanline effect",
		Weight:      400,
	},
	{
		ID:          "sepia",
		Name:        "Sepia",
		Description: "Warm brownish tint like old photographs",
		Weight:      650,
	},
	{
		ID:          "monochrome",
		Name:        "Monochrome",
		Description: "Black and white conversion",
		Weight:      700,
	},
}

var shaderInfo map[string]ShaderInfo

func init() {
	shaderInfo = make(map[string]ShaderInfo, len(AvailableShaders))
	for _, s := range AvailableShaders {
		shaderInfo[s.ID] = s
	}
}

// GetShaderWeight returns the weight for a shader ID (0 if unknown)
func GetShaderWeight(id string) int {
	return shaderInfo[id].Weight
}

// IsPreprocess returns true if the shader ID is a preprocessing effect
func IsPreprocess(id string) bool {
	return shaderInfo[id].Preprocess
}

// IsKnown reports whether id names an available shader
func IsKnown(id string) bool {
	_, ok := shaderInfo[id]
	return ok
}

// FilterKnown returns ids with unknown and duplicate entries removed,
// preserving order, along with the unknown ids it dropped.
func FilterKnown(ids []string) (known, unknown []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if IsKnown(id) {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	return known, unknown
}
