package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Effect timings.
const (
	shotDuration       = 60 * time.Millisecond
	bigShotDuration    = 120 * time.Millisecond
	killNoteDuration   = 70 * time.Millisecond
	cropHitDuration    = 150 * time.Millisecond
	cropLostDuration   = 350 * time.Millisecond
	superpowerDuration = 450 * time.Millisecond
	fanfareNote        = 140 * time.Millisecond

	attack  = 5 * time.Millisecond
	release = 40 * time.Millisecond
)

type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a stream of d worth of a raw wave at freq.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))), // #nosec G404 -- game only
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = -1
			if o.phase < 0.5 {
				v = 1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is cut off after d.
func NewEnvelope(s beep.Streamer, d, att, rel time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(att), release: rate.N(rel), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if left := e.total - e.position; left < len(samples) {
		samples = samples[:max(0, left)]
	}
	if len(samples) == 0 {
		return 0, false
	}
	n, ok = e.s.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			gain = min(gain, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// newVolume scales s linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// sine uses the beep generator for pure tones, falling back to the
// oscillator when freq is above Nyquist for rate.
func sine(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	gen, err := generators.SineTone(rate, freq)
	if err != nil {
		return tone(freq, d, WaveSine, rate)
	}
	return NewEnvelope(beep.Take(rate.N(d), gen), d, attack, release, rate)
}

func shotSound(rate beep.SampleRate, superpower bool) beep.Streamer {
	if superpower {
		return beep.Mix(
			newVolume(tone(330, bigShotDuration, WaveSaw, rate), 0.6),
			newVolume(tone(0, bigShotDuration, WaveNoise, rate), 0.3),
		)
	}
	return newVolume(tone(660, shotDuration, WaveSquare, rate), 0.4)
}

func killSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		sine(880, killNoteDuration, rate),
		sine(1318.51, killNoteDuration, rate),
	)
}

func cropHitSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(110, cropHitDuration, WaveSaw, rate), 0.7)
}

func cropLostSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(80, cropLostDuration, WaveSaw, rate), 0.6),
		newVolume(tone(0, cropLostDuration, WaveNoise, rate), 0.3),
	)
}

func superpowerSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(0, superpowerDuration, WaveNoise, rate), 0.3),
		newVolume(tone(220, superpowerDuration, WaveSquare, rate), 0.25),
		newVolume(sine(440, superpowerDuration, rate), 0.35),
	)
}

// C5 E5 G5 C6 up for a win, the reverse on saw for a loss.
var fanfare = []float64{523.25, 659.25, 783.99, 1046.5}

func gameOverSound(rate beep.SampleRate, won bool) beep.Streamer {
	notes := make([]beep.Streamer, len(fanfare))
	for i := range fanfare {
		if won {
			notes[i] = sine(fanfare[i], fanfareNote, rate)
		} else {
			notes[i] = newVolume(tone(fanfare[len(fanfare)-1-i]/2, fanfareNote, WaveSaw, rate), 0.6)
		}
	}
	return beep.Seq(notes...)
}
