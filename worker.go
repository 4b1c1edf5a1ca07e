package mediactl

// WorkerHandlers is the set of callbacks a Worker fires back at the control
// layer. All fields are optional for the Worker's purposes, but the backend
// installs a full set at construction and clears it again at teardown, so a
// Worker must tolerate both nil and replaced handlers.
//
// Completion callbacks (OnStarted..OnError) answer lifecycle operations and
// may fire from any goroutine. OnAudioPacketOut, OnVideoPacketOut and
// OnRecordData are the low-latency path: they are forwarded synchronously to
// the caller's raw slots without queuing, so they must be cheap to call.
type WorkerHandlers struct {
	// Lifecycle completions.
	OnStarted  func()
	OnUpdated  func()
	OnStopped  func()
	OnFinished func()
	OnError    func(code int)

	// Coalesced event stream.
	OnAudioIntensity func(level int)
	OnPreviewFrame   func(frame *VideoFrame)
	OnOutputFrame    func(frame *VideoFrame)

	// Raw low-latency slots.
	OnAudioPacketOut func(packet *RTPPacket)
	OnVideoPacketOut func(packet *RTPPacket)
	OnRecordData     func(data []byte)
}

// Worker is the real-time media pipeline engine this package controls. The
// engine itself (capture, encode, RTP packetization) is out of scope here;
// implementations wrap whatever does the actual work.
//
// Start, Stop and Update are asynchronous: they begin the operation and
// signal completion through the corresponding handler. The backend
// guarantees at most one of them is outstanding at a time. All other methods
// are synchronous and are only invoked from the worker event loop, except
// SubmitAudioPacket/SubmitVideoPacket which may be called from any goroutine
// (they carry inbound RTP and skip the control queues).
type Worker interface {
	// SetHandlers installs the callback set. Called once before any other
	// method and once with the zero value at teardown.
	SetHandlers(handlers WorkerHandlers)

	// ApplyDevices overwrites the worker's device selection.
	ApplyDevices(devices DeviceConfig)

	// ApplyCodecs overwrites the codec fields whose Use flags are set.
	ApplyCodecs(codecs CodecConfig)

	// Snapshot returns the worker's current negotiated state. The backend
	// fills in the terminal flags.
	Snapshot() Status

	// Start begins the session; completion via OnStarted (or OnError).
	Start()

	// Stop tears the session down; completion via OnStopped.
	Stop()

	// Update applies previously set device/codec state to the running
	// session; completion via OnUpdated.
	Update()

	TransmitAudio(index int)
	PauseAudio()
	TransmitVideo(index int)
	PauseVideo()

	RecordStart()
	RecordStop()

	// SubmitAudioPacket and SubmitVideoPacket feed inbound RTP.
	SubmitAudioPacket(packet *RTPPacket)
	SubmitVideoPacket(packet *RTPPacket)

	// Close forces the pipeline down synchronously and releases resources.
	// Called on the worker loop during teardown, possibly while an
	// asynchronous operation is still outstanding; no handler fires for
	// work cut short this way.
	Close() error
}
