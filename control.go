package mediactl

import (
	"errors"
	"sync/atomic"

	"github.com/pion/logging"
)

// ErrNoWorker is returned by NewControl when no Worker is supplied.
var ErrNoWorker = errors.New("mediactl: worker is required")

// ErrNoWorkerLoop is returned by NewControl when no worker Scheduler is
// supplied.
var ErrNoWorkerLoop = errors.New("mediactl: worker loop is required")

// ControlConfig configures a Control.
type ControlConfig struct {
	// Worker is the pipeline engine to drive. Required.
	Worker Worker

	// WorkerLoop is the scheduler of the goroutine the Worker lives on.
	// Required; the backend is built and torn down on it.
	WorkerLoop Scheduler

	// CallerLoop is the scheduler observer callbacks fire on. Optional;
	// when nil the Control runs an internal Loop for delivery.
	CallerLoop Scheduler

	// LoggerFactory provides scoped loggers. Optional; defaults to pion's
	// default factory.
	LoggerFactory logging.LoggerFactory

	// Observer callbacks, delivered coalesced on the caller loop.
	OnPreviewFrame   func(frame *VideoFrame)
	OnOutputFrame    func(frame *VideoFrame)
	OnAudioIntensity func(level int)
	OnStatus         func(status Status)

	// Raw slots, forwarded synchronously from the worker's goroutine.
	OnAudioPacketOut func(packet *RTPPacket)
	OnVideoPacketOut func(packet *RTPPacket)
	OnRecordData     func(data []byte)
}

// Control is the application-facing handle of the bridge. All command
// methods are non-blocking fire-and-forget; results and events arrive
// through the configured callbacks.
//
// A Control owns its backend: NewControl blocks until the backend exists on
// the worker loop, Close blocks until it has been torn down there again.
type Control struct {
	workerLoop Scheduler
	callerLoop Scheduler
	ownLoop    *Loop // non-nil when we created callerLoop ourselves
	log        logging.LeveledLogger

	in       inbox // events, worker loop → caller
	closed   atomic.Bool
	draining atomic.Int32

	back *backend

	onPreviewFrame   func(frame *VideoFrame)
	onOutputFrame    func(frame *VideoFrame)
	onAudioIntensity func(level int)
	onStatus         func(status Status)

	onAudioPacketOut func(packet *RTPPacket)
	onVideoPacketOut func(packet *RTPPacket)
	onRecordData     func(data []byte)
}

// NewControl builds the bridge. It schedules backend construction on the
// worker loop and blocks until that has run, so the returned Control is
// immediately usable from any goroutine.
func NewControl(config ControlConfig) (*Control, error) {
	if config.Worker == nil {
		return nil, ErrNoWorker
	}
	if config.WorkerLoop == nil {
		return nil, ErrNoWorkerLoop
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	c := &Control{
		workerLoop:       config.WorkerLoop,
		callerLoop:       config.CallerLoop,
		log:              loggerFactory.NewLogger("mediactl"),
		onPreviewFrame:   config.OnPreviewFrame,
		onOutputFrame:    config.OnOutputFrame,
		onAudioIntensity: config.OnAudioIntensity,
		onStatus:         config.OnStatus,
		onAudioPacketOut: config.OnAudioPacketOut,
		onVideoPacketOut: config.OnVideoPacketOut,
		onRecordData:     config.OnRecordData,
	}
	if c.callerLoop == nil {
		c.ownLoop = NewLoop()
		c.callerLoop = c.ownLoop
	}

	PostWait(c.workerLoop, func() {
		c.back = newBackend(c, config.Worker, c.workerLoop, loggerFactory)
	})
	c.log.Debug("control ready")
	return c, nil
}

// Close tears the backend down on the worker loop and blocks until that has
// completed. The worker pipeline is forced down before Close returns. Safe
// to call more than once, and safe to call from an observer callback: a
// drain in progress detects the close and discards its remaining events.
func (c *Control) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.log.Debug("closing")
	PostWait(c.workerLoop, c.back.close)
	if c.ownLoop != nil {
		if c.draining.Load() > 0 {
			// Re-entrant close from a callback on our own loop; the
			// loop cannot wait for itself.
			go c.ownLoop.Close()
		} else {
			c.ownLoop.Close()
		}
	}
	return nil
}

// Start begins a session with the given device and codec configuration. A
// Status event follows once the worker has started (or failed).
func (c *Control) Start(devices DeviceConfig, codecs CodecConfig) {
	c.post(startMessage{devices: devices, codecs: codecs})
}

// Stop ends the session. A Status event with Stopped set follows.
func (c *Control) Stop() {
	c.post(stopMessage{})
}

// UpdateDevices applies a new device selection to the running session. No
// Status event follows.
func (c *Control) UpdateDevices(devices DeviceConfig) {
	c.post(updateDevicesMessage{devices: devices})
}

// UpdateCodecs applies new codec parameters to the running session. A Status
// event follows once the worker has picked them up.
func (c *Control) UpdateCodecs(codecs CodecConfig) {
	c.post(updateCodecsMessage{codecs: codecs})
}

// SetTransmit switches transmission of the negotiated payload types.
func (c *Control) SetTransmit(transmit Transmit) {
	c.post(transmitMessage{transmit: transmit})
}

// SetRecord toggles recording. Recorded data arrives on the OnRecordData
// slot.
func (c *Control) SetRecord(record Record) {
	c.post(recordMessage{record: record})
}

// SubmitAudioPacket feeds an inbound audio RTP packet straight to the
// worker, skipping the command queue.
func (c *Control) SubmitAudioPacket(packet *RTPPacket) {
	if c.closed.Load() {
		return
	}
	c.back.worker.SubmitAudioPacket(packet)
}

// SubmitVideoPacket feeds an inbound video RTP packet straight to the
// worker, skipping the command queue.
func (c *Control) SubmitVideoPacket(packet *RTPPacket) {
	if c.closed.Load() {
		return
	}
	c.back.worker.SubmitVideoPacket(packet)
}

// post hands a command to the backend.
func (c *Control) post(msg message) {
	if c.closed.Load() {
		return
	}
	c.back.post(msg)
}

// postEvent queues an event for delivery on the caller loop. Called from the
// worker side; must not invoke callbacks itself.
func (c *Control) postEvent(msg message) {
	if c.closed.Load() {
		return
	}
	if c.in.push(msg) {
		c.callerLoop.Post(c.processMessages)
	}
}

// processMessages drains the event inbox on the caller loop, coalesces the
// high-frequency kinds and delivers callbacks in fixed order: preview frame,
// output frame, audio intensity, then statuses in arrival order. After every
// callback the liveness flag is rechecked; a Control closed mid-drain
// abandons the rest of the batch without further callbacks.
func (c *Control) processMessages() {
	c.draining.Add(1)
	defer c.draining.Add(-1)

	batch := c.in.drainAll()
	if c.closed.Load() {
		return
	}

	batch, fm := takeLatestFrame(batch, FramePreview)
	if fm != nil && c.onPreviewFrame != nil {
		c.onPreviewFrame(fm.frame)
		if c.closed.Load() {
			return
		}
	}

	batch, fm = takeLatestFrame(batch, FrameOutput)
	if fm != nil && c.onOutputFrame != nil {
		c.onOutputFrame(fm.frame)
		if c.closed.Load() {
			return
		}
	}

	batch, im := takeLatestIntensity(batch)
	if im != nil && c.onAudioIntensity != nil {
		c.onAudioIntensity(im.value)
		if c.closed.Load() {
			return
		}
	}

	for _, msg := range batch {
		sm, ok := msg.(statusMessage)
		if !ok {
			continue
		}
		if c.onStatus != nil {
			c.onStatus(sm.status)
			if c.closed.Load() {
				return
			}
		}
	}
}

// Raw-path forwarding, called synchronously from the worker's goroutine.

func (c *Control) forwardAudioPacketOut(packet *RTPPacket) {
	if c.closed.Load() || c.onAudioPacketOut == nil {
		return
	}
	c.onAudioPacketOut(packet)
}

func (c *Control) forwardVideoPacketOut(packet *RTPPacket) {
	if c.closed.Load() || c.onVideoPacketOut == nil {
		return
	}
	c.onVideoPacketOut(packet)
}

func (c *Control) forwardRecordData(data []byte) {
	if c.closed.Load() || c.onRecordData == nil {
		return
	}
	c.onRecordData(data)
}
