package standalone

import (
	"bytes"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const audioSampleRate = 48000

// oto context singleton
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use.
func ensureOtoContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
	})
	return otoCtx, otoInitErr
}

// tone is one note of a generated sound
type tone struct {
	freq   float64
	start  float64 // seconds
	volume float64
}

// synthesize renders tones as 48kHz stereo S16LE with a short raised-cosine
// attack and exponential decay.
func synthesize(duration, attack, decay float64, tones []tone) []byte {
	numSamples := int(float64(audioSampleRate) * duration)
	samples := make([]byte, numSamples*4) // 2 bytes * 2 channels

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(audioSampleRate)
		sample := 0.0

		for _, n := range tones {
			if t < n.start {
				continue
			}
			noteT := t - n.start

			var envelope float64
			if noteT < attack {
				envelope = (1 - math.Cos(math.Pi*noteT/attack)) / 2
			} else {
				envelope = math.Exp(-3 * (noteT - attack) / decay)
			}
			sample += math.Sin(2*math.Pi*n.freq*noteT) * envelope * n.volume
		}

		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		value := int16(sample * 12000)

		idx := i * 4
		samples[idx] = byte(value)
		samples[idx+1] = byte(value >> 8)
		samples[idx+2] = byte(value)
		samples[idx+3] = byte(value >> 8)
	}

	return samples
}

// generateMoveSound creates a short high click for a focus move
func generateMoveSound() []byte {
	return synthesize(0.06, 0.004, 0.03, []tone{
		{1318.51, 0, 0.35},
	})
}

// generateBumpSound creates a low double thud for a move past an edge
func generateBumpSound() []byte {
	return synthesize(0.14, 0.006, 0.05, []tone{
		{146.83, 0, 0.5},
		{110.00, 0.05, 0.45},
	})
}

// SoundPlayer plays navigation feedback through one-shot oto players
type SoundPlayer struct {
	mu     sync.Mutex
	volume float64
	muted  bool
	player *oto.Player

	move []byte
	bump []byte
}

// NewSoundPlayer creates a player with pre-rendered sounds. Audio output is
// opened lazily on the first sound.
func NewSoundPlayer(volume float64, muted bool) *SoundPlayer {
	return &SoundPlayer{
		volume: clampVolume(volume),
		muted:  muted,
		move:   generateMoveSound(),
		bump:   generateBumpSound(),
	}
}

func clampVolume(vol float64) float64 {
	if vol < 0 {
		return 0
	}
	if vol > 2.0 {
		return 2.0
	}
	return vol
}

// SetVolume sets the playback volume (0.0 = silent, 1.0 = normal, 2.0 = max).
func (s *SoundPlayer) SetVolume(vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(vol)
}

// SetMuted turns all sounds off or on
func (s *SoundPlayer) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

// Muted reports whether sounds are off
func (s *SoundPlayer) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// PlayNavigation plays the move click when moved is true and the edge bump
// otherwise.
func (s *SoundPlayer) PlayNavigation(moved bool) {
	if moved {
		s.play(s.move)
	} else {
		s.play(s.bump)
	}
}

func (s *SoundPlayer) audible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.muted && s.volume > 0
}

func (s *SoundPlayer) play(data []byte) {
	if len(data) == 0 || !s.audible() {
		return
	}

	ctx, err := ensureOtoContext()
	if err != nil {
		log.Printf("Warning: audio not available: %v", err)
		s.SetMuted(true)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Close previous player if still active
	if s.player != nil {
		s.player.Close()
	}
	s.player = ctx.NewPlayer(bytes.NewReader(data))
	// Set volume before Play() to avoid a pop
	s.player.SetVolume(s.volume)
	s.player.Play()
}

// Close cleans up audio resources
func (s *SoundPlayer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}
