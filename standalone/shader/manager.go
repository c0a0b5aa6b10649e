package shader

import (
	"cmp"
	"embed"
	"fmt"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kage sources, one file per pass named <id>.kage
//
//go:embed shaders/*.kage
var shaderFiles embed.FS

func shaderSource(id string) ([]byte, error) {
	return shaderFiles.ReadFile("shaders/" + id + ".kage")
}

// Manager compiles the post-processing passes drawn over the stage and
// runs them in weight order.
type Manager struct {
	compiled map[string]*ebiten.Shader

	bufferA, bufferB *ebiten.Image // ping-pong targets between passes
	trailBuffer      *ebiten.Image // previous frame, kept for trails

	frame int // Time uniform

	// Pipeline for the last seen ID list
	pipelineIDs []string
	pipeline    []*ebiten.Shader
}

// NewManager creates a new shader manager
func NewManager() *Manager {
	return &Manager{
		compiled: make(map[string]*ebiten.Shader),
	}
}

// ResetBuffers releases all effect buffers
func (m *Manager) ResetBuffers() {
	for _, b := range []**ebiten.Image{&m.trailBuffer, &m.bufferA, &m.bufferB} {
		if *b != nil {
			(*b).Deallocate()
			*b = nil
		}
	}
}

// IncrementFrame advances the frame counter for animated shaders
func (m *Manager) IncrementFrame() {
	m.frame++
}

// Frame returns the current frame count
func (m *Manager) Frame() int {
	return m.frame
}

// LoadShader compiles and caches a shader by ID
func (m *Manager) LoadShader(id string) error {
	if _, ok := m.compiled[id]; ok {
		return nil
	}

	if !IsKnown(id) || IsPreprocess(id) {
		return fmt.Errorf("unknown shader: %s", id)
	}
	src, err := shaderSource(id)
	if err != nil {
		return fmt.Errorf("failed to read shader %s: %w", id, err)
	}

	shader, err := ebiten.NewShader(src)
	if err != nil {
		return fmt.Errorf("failed to compile shader %s: %w", id, err)
	}

	m.compiled[id] = shader
	return nil
}

// PreloadShaders loads all shaders in the given list
func (m *Manager) PreloadShaders(ids []string) {
	for _, id := range ids {
		if IsPreprocess(id) {
			continue
		}
		if err := m.LoadShader(id); err != nil {
			log.Printf("Warning: failed to load shader %s: %v", id, err)
		}
	}
}

// ensureImage recreates *img when it is missing or the wrong size
func ensureImage(img **ebiten.Image, width, height int) {
	if *img != nil {
		bw, bh := (*img).Bounds().Dx(), (*img).Bounds().Dy()
		if bw == width && bh == height {
			return
		}
		(*img).Deallocate()
	}
	*img = ebiten.NewImage(width, height)
}

func (m *Manager) ensureBuffers(width, height int) {
	ensureImage(&m.bufferA, width, height)
	ensureImage(&m.bufferB, width, height)
}

// SortPasses returns the Kage pass IDs from shaderIDs ordered by weight
// descending, ties broken alphabetically
func SortPasses(shaderIDs []string) []string {
	filtered := make([]string, 0, len(shaderIDs))
	for _, id := range shaderIDs {
		if !IsPreprocess(id) && IsKnown(id) {
			filtered = append(filtered, id)
		}
	}
	slices.SortFunc(filtered, func(a, b string) int {
		if c := cmp.Compare(GetShaderWeight(b), GetShaderWeight(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return filtered
}

// buildPipeline resolves ids to compiled passes. IDs that failed to
// compile are skipped.
func (m *Manager) buildPipeline(ids []string) {
	m.pipelineIDs = slices.Clone(ids)
	m.pipeline = make([]*ebiten.Shader, 0, len(ids))
	for _, id := range SortPasses(ids) {
		if s, ok := m.compiled[id]; ok {
			m.pipeline = append(m.pipeline, s)
		}
	}
}

// applyTrails blends src over the decayed previous frame:
// trail = trail * 0.6 + src * 0.4
func (m *Manager) applyTrails(src *ebiten.Image) *ebiten.Image {
	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	ensureImage(&m.trailBuffer, srcW, srcH)
	m.ensureBuffers(srcW, srcH)

	m.bufferA.Clear()
	decayOp := &ebiten.DrawImageOptions{}
	decayOp.ColorScale.Scale(0.6, 0.6, 0.6, 1.0)
	m.bufferA.DrawImage(m.trailBuffer, decayOp)

	addOp := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
	addOp.ColorScale.Scale(0.4, 0.4, 0.4, 1.0)
	m.bufferA.DrawImage(src, addOp)

	m.trailBuffer.Clear()
	m.trailBuffer.DrawImage(m.bufferA, nil)

	return m.bufferA
}

// ApplyPreprocessEffects applies the non-Kage effects named in shaderIDs
// and returns the processed image. src is returned as-is when none apply.
func (m *Manager) ApplyPreprocessEffects(src *ebiten.Image, shaderIDs []string) *ebiten.Image {
	if src == nil {
		return nil
	}
	if slices.Contains(shaderIDs, "trails") {
		return m.applyTrails(src)
	}
	return src
}

// ApplyShaders draws src to dst with the specified shader chain applied.
// If no pass compiled, src is drawn directly to dst.
// Returns true if shaders were applied, false if direct draw was used.
func (m *Manager) ApplyShaders(dst, src *ebiten.Image, shaderIDs []string) bool {
	if src == nil {
		return false
	}

	if !slices.Equal(m.pipelineIDs, shaderIDs) {
		m.buildPipeline(shaderIDs)
	}

	passes := m.pipeline
	if len(passes) == 0 {
		dst.DrawImage(src, nil)
		return false
	}

	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	if len(passes) > 1 {
		m.ensureBuffers(srcW, srcH)
	}

	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = map[string]any{"Time": float32(m.frame)}
	input := src
	for i, pass := range passes {
		op.Images[0] = input
		if i == len(passes)-1 {
			dst.DrawRectShader(srcW, srcH, pass, op)
			break
		}
		// Intermediate passes alternate B, A, B... so a trails result held
		// in bufferA is never both input and output.
		out := m.bufferB
		if i%2 == 1 {
			out = m.bufferA
		}
		out.Clear()
		out.DrawRectShader(srcW, srcH, pass, op)
		input = out
	}
	return true
}
