package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2

	// AudioBufferDuration is the speaker buffer length, bounds output latency
	AudioBufferDuration = 20 * time.Millisecond

	// AudioBufferFrames is frames per device callback at 44.1kHz
	AudioBufferFrames = (AudioSampleRate * 20) / 1000 // 882

	// AudioScratchFrames preallocates the bridge scratch so device callbacks up to
	// this size never allocate
	AudioScratchFrames = 8192
)

// Music
const (
	MusicDefaultBPM    = 112
	MusicMinBPM        = 40
	MusicMaxBPM        = 240
	MusicStepsPerBeat  = 2 // eighth notes
	MusicDefaultVolume = 0.25
	MusicNoteAttack    = 6 * time.Millisecond
	MusicNoteRelease   = 60 * time.Millisecond
	MusicRootFreq      = 220.0 // A3
)

// Jump Sound
const (
	JumpSoundDuration  = 140 * time.Millisecond
	JumpSoundAttack    = 4 * time.Millisecond
	JumpSoundRelease   = 80 * time.Millisecond
	JumpSoundStartFreq = 330.0
	JumpSoundEndFreq   = 660.0
)

// Land Sound
const (
	LandSoundDuration = 90 * time.Millisecond
	LandSoundAttack   = 2 * time.Millisecond
	LandSoundRelease  = 70 * time.Millisecond
	LandSoundFreq     = 70.0
)

// Bump Sound
const (
	BumpSoundDuration = 80 * time.Millisecond
	BumpSoundAttack   = 3 * time.Millisecond
	BumpSoundRelease  = 30 * time.Millisecond
	BumpSoundFreq     = 110.0
)

// Oink Sound
const (
	OinkSoundDuration  = 220 * time.Millisecond
	OinkSoundAttack    = 10 * time.Millisecond
	OinkSoundRelease   = 90 * time.Millisecond
	OinkSoundFreq      = 180.0
	OinkWobbleRate     = 28.0 // Hz - nasal flutter
	OinkWobbleDepth    = 0.35
	OinkNoiseIntensity = 0.15
)
