package game

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	au "github.com/decker502/bugcatch/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"
)

// bytesPerFrame 解码后的 PCM 格式：16 位、双声道
const bytesPerFrame = 4

// SoundEffect 已加载的单次音效及其时长
type SoundEffect struct {
	Player   *audio.Player
	Duration time.Duration
}

// ResourceManager is responsible for centralized management of game resources.
// It reads assets from a file system (the embedded assets on release builds,
// a directory during development) and caches decoded sound effects.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only used from the game loop.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(embedded.Assets(), audioContext)
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    log.Printf("Failed to load resource config: %v", err)
//	}
type ResourceManager struct {
	fsys         fs.FS                   // Asset file system, paths start with "assets/"
	audioContext *audio.Context          // Global audio context for audio decoding
	soundCache   map[string]*SoundEffect // Cache for loaded sound effects: path -> effect

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - fsys: The file system assets are read from.
//   - audioContext: The global audio context, may be nil when audio is unavailable.
func NewResourceManager(fsys fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		fsys:         fsys,
		audioContext: audioContext,
		soundCache:   make(map[string]*SoundEffect),
		resourceMap:  make(map[string]string),
	}
}

// LoadResourceConfig loads the resource configuration from a YAML file
// and builds the ID -> path mapping.
//
// Example:
//
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    log.Fatal("Failed to load resource config:", err)
//	}
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()

	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	SOUND_WIN -> assets/sounds/win.wav
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	rm.resourceMap = make(map[string]string)

	for _, group := range rm.config.Groups {
		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)

			// Add file extension if not present
			if path.Ext(fullPath) == "" {
				fullPath += ".wav"
			}

			rm.resourceMap[sound.ID] = fullPath
		}
	}
}

// ResolveID returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolveID(resourceID string) (string, bool) {
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// PreloadIDs returns the sound IDs of every group marked preload.
func (rm *ResourceManager) PreloadIDs() []string {
	if rm.config == nil {
		return nil
	}
	return rm.config.preloadIDs()
}

// LoadSoundEffect loads a one-shot sound effect and caches it for future use.
// Supported formats: WAV (.wav), MP3 (.mp3), OGG Vorbis (.ogg) and Sun audio (.au).
//
// Returns:
//   - The effect (player ready to play, but not started) with its playback duration.
//   - An error if audio is unavailable, or the file cannot be read or decoded.
func (rm *ResourceManager) LoadSoundEffect(soundPath string) (*SoundEffect, error) {
	if cached, exists := rm.soundCache[soundPath]; exists {
		return cached, nil
	}

	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available")
	}

	data, err := fs.ReadFile(rm.fsys, soundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", soundPath, err)
	}

	sampleRate := rm.audioContext.SampleRate()
	stream, length, err := decodeSound(data, path.Ext(soundPath), sampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound effect %s: %w", soundPath, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", soundPath, err)
	}

	effect := &SoundEffect{
		Player:   player,
		Duration: streamDuration(length, sampleRate),
	}
	rm.soundCache[soundPath] = effect

	return effect, nil
}

// LoadSoundEffectByID loads a sound effect using its resource ID.
func (rm *ResourceManager) LoadSoundEffectByID(resourceID string) (*SoundEffect, error) {
	soundPath, ok := rm.ResolveID(resourceID)
	if !ok {
		return nil, fmt.Errorf("sound resource %s not found in config", resourceID)
	}
	return rm.LoadSoundEffect(soundPath)
}

// decodeSound decodes audio data to 16-bit stereo PCM at the given sample rate.
//
// Returns the decoded stream and its length in bytes.
func decodeSound(data []byte, ext string, sampleRate int) (io.ReadSeeker, int64, error) {
	reader := bytes.NewReader(data)

	switch strings.ToLower(ext) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("wav: %w", err)
		}
		return s, s.Length(), nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("mp3: %w", err)
		}
		return s, s.Length(), nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("ogg: %w", err)
		}
		return s, s.Length(), nil
	case ".au":
		s, err := au.DecodeAU(data)
		if err != nil {
			return nil, 0, err
		}
		if s.SampleRate() == sampleRate {
			return s, s.Length(), nil
		}
		length := s.Length() * int64(sampleRate) / int64(s.SampleRate())
		length -= length % bytesPerFrame
		return audio.Resample(s, s.Length(), s.SampleRate(), sampleRate), length, nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg, .au)", ext)
	}
}

// streamDuration converts a decoded stream length in bytes to playback time.
func streamDuration(length int64, sampleRate int) time.Duration {
	if length <= 0 || sampleRate <= 0 {
		return 0
	}
	frames := length / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
