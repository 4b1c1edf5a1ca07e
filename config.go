package mediactl

// AudioParams describes a local audio format.
type AudioParams struct {
	Codec      string // Codec name, e.g. "opus"
	SampleRate int    // Samples per second
	SampleSize int    // Bits per sample
	Channels   int    // Channel count
}

// VideoParams describes a local video format.
type VideoParams struct {
	Codec  string // Codec name, e.g. "vp8"
	Width  int    // Frame width in pixels
	Height int    // Frame height in pixels
	FPS    int    // Frames per second
}

// DeviceConfig selects capture/playback devices and tuning for a session.
// Every field is independently overridable; the zero value leaves the
// worker's device selection unchanged where it distinguishes unset from
// empty (volumes use -1 for "leave as is").
type DeviceConfig struct {
	AudioOutID string // Playback device id
	AudioInID  string // Capture device id
	VideoInID  string // Camera device id

	FileIn     string // Input media file path (instead of live capture)
	FileDataIn []byte // Input media file contents (instead of a path)
	LoopFile   bool   // Restart file playback at EOF

	AudioOutVolume int // 0-100, or -1 to leave unchanged
	AudioInVolume  int // 0-100, or -1 to leave unchanged
}

// DefaultDeviceConfig returns a DeviceConfig that changes nothing.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		AudioOutVolume: -1,
		AudioInVolume:  -1,
	}
}

// CodecConfig carries codec parameter updates. Each field has a companion
// Use flag; fields whose flag is false leave the worker's current value
// untouched, so a config can update any subset independently.
type CodecConfig struct {
	UseLocalAudioParams bool
	LocalAudioParams    AudioParams

	UseLocalVideoParams bool
	LocalVideoParams    VideoParams

	UseLocalAudioPayloadInfo bool
	LocalAudioPayloadInfo    []CodecParameters

	UseLocalVideoPayloadInfo bool
	LocalVideoPayloadInfo    []CodecParameters

	UseRemoteAudioPayloadInfo bool
	RemoteAudioPayloadInfo    []CodecParameters

	UseRemoteVideoPayloadInfo bool
	RemoteVideoPayloadInfo    []CodecParameters
}

// Transmit selects which negotiated payload types to send.
type Transmit struct {
	UseAudio   bool // Transmit audio (false pauses it)
	AudioIndex int  // Index into the local audio payload info
	UseVideo   bool // Transmit video (false pauses it)
	VideoIndex int  // Index into the local video payload info
}

// Record toggles recording of the session.
type Record struct {
	Enabled bool
}

// Status is a snapshot of the worker's negotiated state, delivered after
// lifecycle operations complete and on unsolicited session-ending events.
// At most one of Stopped, Finished and Error is set per snapshot.
type Status struct {
	LocalAudioParams      AudioParams
	LocalVideoParams      VideoParams
	LocalAudioPayloadInfo []CodecParameters
	LocalVideoPayloadInfo []CodecParameters

	CanTransmitAudio bool
	CanTransmitVideo bool

	Stopped   bool // Set on the status answering a Stop
	Finished  bool // Set when the session ended on its own (e.g. file EOF)
	Error     bool // Set when the worker reported a fatal error
	ErrorCode int  // Worker-defined error code, valid when Error is set
}
