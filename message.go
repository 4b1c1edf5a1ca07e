package mediactl

// FrameKind distinguishes the two frame event streams.
type FrameKind int

const (
	FramePreview FrameKind = iota // Local camera preview
	FrameOutput                   // Decoded remote output
)

func (k FrameKind) String() string {
	switch k {
	case FramePreview:
		return "preview"
	case FrameOutput:
		return "output"
	default:
		return "unknown"
	}
}

// message is one unit of cross-goroutine communication: a command flowing
// caller→worker or an event flowing worker→caller. Exactly one side owns a
// message at any time; ownership transfers at push/drain.
type message interface {
	isMessage()
}

// Commands (caller → worker loop).

type startMessage struct {
	devices DeviceConfig
	codecs  CodecConfig
}

type stopMessage struct{}

type updateDevicesMessage struct {
	devices DeviceConfig
}

type updateCodecsMessage struct {
	codecs CodecConfig
}

type transmitMessage struct {
	transmit Transmit
}

type recordMessage struct {
	record Record
}

// Events (worker loop → caller).

type statusMessage struct {
	status Status
}

type frameMessage struct {
	kind  FrameKind
	frame *VideoFrame
}

type intensityMessage struct {
	value int
}

func (startMessage) isMessage() {}
func (stopMessage) isMessage() {}
func (updateDevicesMessage) isMessage() {}
func (updateCodecsMessage) isMessage() {}
func (transmitMessage) isMessage() {}
func (recordMessage) isMessage() {}
func (statusMessage) isMessage() {}
func (frameMessage) isMessage() {}
func (intensityMessage) isMessage() {}

// takeLatestFrame removes every frame message of the given kind from batch
// and returns the filtered batch plus the most recent of the removed frames,
// or nil if there were none. The relative order of the surviving messages is
// preserved. Earlier frames are simply dropped; the UI only ever wants the
// freshest one.
func takeLatestFrame(batch []message, kind FrameKind) ([]message, *frameMessage) {
	var latest *frameMessage
	out := batch[:0]
	for _, msg := range batch {
		if fm, ok := msg.(frameMessage); ok && fm.kind == kind {
			latest = &fm
			continue
		}
		out = append(out, msg)
	}
	return out, latest
}

// takeLatestIntensity is the audio-intensity analogue of takeLatestFrame.
func takeLatestIntensity(batch []message) ([]message, *intensityMessage) {
	var latest *intensityMessage
	out := batch[:0]
	for _, msg := range batch {
		if im, ok := msg.(intensityMessage); ok {
			latest = &im
			continue
		}
		out = append(out, msg)
	}
	return out, latest
}
