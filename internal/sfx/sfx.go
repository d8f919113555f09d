// Package sfx plays synthesized sound effects for engine events.
package sfx

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps overlapping effects; extra events are dropped.
const maxVoices = 16

// Sound names one effect.
type Sound int

const (
	SoundNone Sound = iota
	SoundShot
	SoundBigShot
	SoundKill
	SoundCropHit
	SoundCropLost
	SoundSuperpower
	SoundVictory
	SoundDefeat
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundBigShot:
		return "big_shot"
	case SoundKill:
		return "kill"
	case SoundCropHit:
		return "crop_hit"
	case SoundCropLost:
		return "crop_lost"
	case SoundSuperpower:
		return "superpower"
	case SoundVictory:
		return "victory"
	case SoundDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// ForEvent picks the effect for ev, or SoundNone.
func ForEvent(ev game.Event) Sound {
	switch ev.Kind {
	case game.EventShot:
		if ev.Superpower {
			return SoundBigShot
		}
		return SoundShot
	case game.EventEnemyKilled:
		if ev.Cause == game.CauseCrop {
			return SoundNone
		}
		return SoundKill
	case game.EventCropDamaged:
		return SoundCropHit
	case game.EventCropDestroyed:
		return SoundCropLost
	case game.EventSuperpower:
		return SoundSuperpower
	case game.EventGameOver:
		if ev.Won {
			return SoundVictory
		}
		return SoundDefeat
	default:
		return SoundNone
	}
}

// Effect builds the stream for s at the given linear volume. It returns nil
// for SoundNone.
func Effect(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundShot:
		st = shotSound(rate, false)
	case SoundBigShot:
		st = shotSound(rate, true)
	case SoundKill:
		st = killSound(rate)
	case SoundCropHit:
		st = cropHitSound(rate)
	case SoundCropLost:
		st = cropLostSound(rate)
	case SoundSuperpower:
		st = superpowerSound(rate)
	case SoundVictory:
		st = gameOverSound(rate, true)
	case SoundDefeat:
		st = gameOverSound(rate, false)
	default:
		return nil
	}
	return newVolume(st, volume)
}

// SoundManager owns the speaker and mixes effects onto it.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a manager at volume in [0, 1].
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(1, max(0, volume)),
		log:    log,
	}
}

// Initialize opens the audio device. Calling it twice is harmless.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Handle plays the effect for ev, if any.
func (sm *SoundManager) Handle(ev game.Event) {
	sm.Play(ForEvent(ev))
}

// Play queues s on the mixer. It is a no-op before Initialize.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == SoundNone {
		return
	}
	st := Effect(s, sampleRate, sm.volume)
	if sm.lockedAdd(st) {
		return
	}
	sm.log.Debug().Stringer("sound", s).Msg("voice limit reached, effect dropped")
}

func (sm *SoundManager) lockedAdd(st beep.Streamer) bool {
	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return false
	}
	sm.mixer.Add(st)
	return true
}
