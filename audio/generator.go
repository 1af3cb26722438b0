package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/pigpen/constant"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator generates a raw waveform sweeping linearly from startFreq to endFreq
func oscillator(waveType int, startFreq, endFreq float64, samples int, rng *rand.Rand) []float32 {
	buf := make([]float32, samples)
	phase := 0.0

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = float32(math.Sin(2 * math.Pi * phase))
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = float32(2.0 * (phase - 0.5))
		case waveNoise:
			buf[i] = float32(rng.Float64()*2 - 1)
		}

		freq := startFreq
		if samples > 1 {
			freq += (endFreq - startFreq) * float64(i) / float64(samples-1)
		}
		phase += freq / float64(SampleRate)
		phase -= math.Floor(phase)
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf []float32, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := float32(1.0)
		if i < attackSamples && attackSamples > 0 {
			vol = float32(i) / float32(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float32(total-i) / float32(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixInto adds b scaled by bScale into a, both of equal length
func mixInto(a, b []float32, bScale float32) {
	for i := range b {
		a[i] += b[i] * bScale
	}
}

// scale multiplies buf in place
func scale(buf []float32, gain float32) {
	for i := range buf {
		buf[i] *= gain
	}
}

// durationToSamples converts duration to sample count
func durationToSamples(d time.Duration) int {
	return int(d.Seconds() * float64(SampleRate))
}

// --- Sound Generators (unity gain) ---

func generateJumpSound(rng *rand.Rand) []float32 {
	samples := durationToSamples(constant.JumpSoundDuration)
	buf := oscillator(waveSquare, constant.JumpSoundStartFreq, constant.JumpSoundEndFreq, samples, rng)
	scale(buf, 0.5)
	applyEnvelope(buf, constant.JumpSoundAttack, constant.JumpSoundRelease)
	return buf
}

func generateLandSound(rng *rand.Rand) []float32 {
	samples := durationToSamples(constant.LandSoundDuration)
	thud := oscillator(waveSine, constant.LandSoundFreq*1.5, constant.LandSoundFreq, samples, rng)
	grit := oscillator(waveNoise, 0, 0, samples, rng)
	mixInto(thud, grit, 0.2)
	applyEnvelope(thud, constant.LandSoundAttack, constant.LandSoundRelease)
	return thud
}

func generateBumpSound(rng *rand.Rand) []float32 {
	samples := durationToSamples(constant.BumpSoundDuration)
	buf := oscillator(waveSaw, constant.BumpSoundFreq, constant.BumpSoundFreq*0.7, samples, rng)
	scale(buf, 0.6)
	applyEnvelope(buf, constant.BumpSoundAttack, constant.BumpSoundRelease)
	return buf
}

func generateOinkSound(rng *rand.Rand) []float32 {
	samples := durationToSamples(constant.OinkSoundDuration)
	buf := make([]float32, samples)

	// Nasal saw with a fast pitch wobble
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(SampleRate)
		freq := constant.OinkSoundFreq * (1 + constant.OinkWobbleDepth*math.Sin(2*math.Pi*constant.OinkWobbleRate*t))
		buf[i] = float32(2.0 * (phase - 0.5))
		phase += freq / float64(SampleRate)
		phase -= math.Floor(phase)
	}

	noise := oscillator(waveNoise, 0, 0, samples, rng)
	mixInto(buf, noise, constant.OinkNoiseIntensity)
	scale(buf, 0.5)
	applyEnvelope(buf, constant.OinkSoundAttack, constant.OinkSoundRelease)
	return buf
}

// generateSound dispatches to specific generator
func generateSound(st SoundType, rng *rand.Rand) []float32 {
	switch st {
	case SoundJump:
		return generateJumpSound(rng)
	case SoundLand:
		return generateLandSound(rng)
	case SoundBump:
		return generateBumpSound(rng)
	case SoundOink:
		return generateOinkSound(rng)
	default:
		return nil
	}
}
