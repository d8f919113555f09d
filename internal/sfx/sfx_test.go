package sfx

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

// drain streams s to completion and returns every sample; it fails if s
// runs longer than limit.
func drain(t *testing.T, s beep.Streamer, limit int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		if len(out) > limit {
			t.Fatalf("stream did not end within %d samples", limit)
		}
	}
	return out
}

func assertInRange(t *testing.T, name string, samples [][2]float64) {
	t.Helper()
	for i, s := range samples {
		for ch := 0; ch < 2; ch++ {
			if math.IsNaN(s[ch]) || s[ch] < -1 || s[ch] > 1 {
				t.Fatalf("%s: sample %d ch %d = %f out of [-1,1]", name, i, ch, s[ch])
			}
		}
	}
}

// --- Oscillator ---

func TestOscillator_Length(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)
	got := drain(t, osc, rate.N(time.Second))
	if len(got) != rate.N(100*time.Millisecond) {
		t.Fatalf("len = %d, want %d", len(got), rate.N(100*time.Millisecond))
	}
	assertInRange(t, "sine", got)
}

func TestOscillator_SquareIsBipolar(t *testing.T) {
	rate := beep.SampleRate(44100)
	got := drain(t, NewOscillator(220, 20*time.Millisecond, WaveSquare, rate), rate.N(time.Second))
	for i, s := range got {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %f, want ±1", i, s[0])
		}
	}
}

func TestOscillator_NoiseIsRepeatable(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := drain(t, NewOscillator(0, 10*time.Millisecond, WaveNoise, rate), 1000)
	b := drain(t, NewOscillator(0, 10*time.Millisecond, WaveNoise, rate), 1000)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise differs at %d", i)
		}
	}
}

// --- Envelope ---

func TestEnvelope_StartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)
	got := drain(t, env, rate.N(time.Second))
	if len(got) != rate.N(d) {
		t.Fatalf("len = %d, want %d", len(got), rate.N(d))
	}
	if got[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", got[0][0])
	}
	mid := got[len(got)/2][0]
	if mid != 1 {
		t.Errorf("sustain sample = %f, want 1", mid)
	}
	if last := math.Abs(got[len(got)-1][0]); last > 0.01 {
		t.Errorf("last sample = %f, want ~0", last)
	}
}

func TestEnvelope_CutsLongSource(t *testing.T) {
	rate := beep.SampleRate(8000)
	env := NewEnvelope(NewOscillator(100, time.Second, WaveSine, rate), 50*time.Millisecond, 0, 0, rate)
	if got := len(drain(t, env, rate.N(2*time.Second))); got != rate.N(50*time.Millisecond) {
		t.Fatalf("len = %d, want %d", got, rate.N(50*time.Millisecond))
	}
}

// --- Effects ---

func TestEffect_AllSoundsFiniteAndBounded(t *testing.T) {
	sounds := []Sound{SoundShot, SoundBigShot, SoundKill, SoundCropHit, SoundCropLost, SoundSuperpower, SoundVictory, SoundDefeat}
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			got := drain(t, Effect(s, sampleRate, 1), sampleRate.N(2*time.Second))
			if len(got) == 0 {
				t.Fatal("empty effect")
			}
			assertInRange(t, s.String(), got)
		})
	}
}

func TestEffect_ZeroVolumeIsSilent(t *testing.T) {
	got := drain(t, Effect(SoundShot, sampleRate, 0), sampleRate.N(time.Second))
	for i, s := range got {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestEffect_NoneIsNil(t *testing.T) {
	if Effect(SoundNone, sampleRate, 1) != nil {
		t.Fatal("SoundNone should have no stream")
	}
}

func TestForEvent(t *testing.T) {
	cases := []struct {
		ev   game.Event
		want Sound
	}{
		{game.Event{Kind: game.EventShot}, SoundShot},
		{game.Event{Kind: game.EventShot, Superpower: true}, SoundBigShot},
		{game.Event{Kind: game.EventEnemyKilled, Cause: game.CauseBullet}, SoundKill},
		{game.Event{Kind: game.EventEnemyKilled, Cause: game.CauseCrop}, SoundNone},
		{game.Event{Kind: game.EventCropDamaged}, SoundCropHit},
		{game.Event{Kind: game.EventCropDestroyed}, SoundCropLost},
		{game.Event{Kind: game.EventSuperpower}, SoundSuperpower},
		{game.Event{Kind: game.EventGameOver, Won: true}, SoundVictory},
		{game.Event{Kind: game.EventGameOver}, SoundDefeat},
		{game.Event{Kind: game.EventTimeBonus}, SoundNone},
		{game.Event{Kind: game.EventEnemySpawned}, SoundNone},
	}
	for _, c := range cases {
		if got := ForEvent(c.ev); got != c.want {
			t.Errorf("ForEvent(%s) = %s, want %s", c.ev.Kind, got, c.want)
		}
	}
}

// --- SoundManager ---

func TestSoundManager_IgnoresEventsBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(0.5, zerolog.Nop())
	sm.Handle(game.Event{Kind: game.EventShot})
	if n := sm.mixer.Len(); n != 0 {
		t.Fatalf("mixer has %d voices, want 0", n)
	}
}

func TestSoundManager_QueuesAndCapsVoices(t *testing.T) {
	sm := NewSoundManager(2, zerolog.Nop())
	if sm.volume != 1 {
		t.Fatalf("volume = %f, want clamped to 1", sm.volume)
	}
	sm.initialized = true

	sm.Handle(game.Event{Kind: game.EventTimeBonus})
	if n := sm.mixer.Len(); n != 0 {
		t.Fatalf("silent event queued %d voices", n)
	}
	for i := 0; i < maxVoices+5; i++ {
		sm.Handle(game.Event{Kind: game.EventShot})
	}
	if n := sm.mixer.Len(); n != maxVoices {
		t.Fatalf("mixer has %d voices, want %d", n, maxVoices)
	}
}
