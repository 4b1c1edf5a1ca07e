package mediactl

import (
	"sync/atomic"

	"github.com/pion/logging"
)

// backend owns the Worker and lives on the worker event loop. It drains its
// command inbox one message at a time and applies each to the worker; the
// lifecycle gate (blocking) halts the drain while a Start, Stop or
// UpdateCodecs is outstanding, so commands queue up instead of racing the
// worker. Its lifetime is strictly nested inside the owning Control's.
type backend struct {
	worker Worker
	loop   Scheduler
	front  *Control // non-owning; only used to post events back
	log    logging.LeveledLogger

	in     inbox // commands, caller → worker loop
	closed atomic.Bool

	// Loop-confined state, touched only on the worker loop.
	blocking      bool
	pendingStatus bool
}

// newBackend wires the worker's callbacks. Runs on the worker loop.
func newBackend(front *Control, worker Worker, loop Scheduler, loggerFactory logging.LoggerFactory) *backend {
	b := &backend{
		worker: worker,
		loop:   loop,
		front:  front,
		log:    loggerFactory.NewLogger("mediactl-worker"),
	}
	worker.SetHandlers(WorkerHandlers{
		OnStarted:  b.workerStarted,
		OnUpdated:  b.workerUpdated,
		OnStopped:  b.workerStopped,
		OnFinished: b.workerFinished,
		OnError:    b.workerError,

		OnAudioIntensity: b.workerAudioIntensity,
		OnPreviewFrame:   b.workerPreviewFrame,
		OnOutputFrame:    b.workerOutputFrame,

		OnAudioPacketOut: front.forwardAudioPacketOut,
		OnVideoPacketOut: front.forwardVideoPacketOut,
		OnRecordData:     front.forwardRecordData,
	})
	return b
}

// close tears the backend down. Runs on the worker loop via the Close
// rendezvous; forces the pipeline down before the caller is released, even
// if a lifecycle operation is still outstanding.
func (b *backend) close() {
	if b.closed.Swap(true) {
		return
	}
	b.worker.SetHandlers(WorkerHandlers{})
	if err := b.worker.Close(); err != nil {
		b.log.Warnf("worker close: %v", err)
	}
}

// post queues a command. May be called from any goroutine.
func (b *backend) post(msg message) {
	if b.closed.Load() {
		return
	}
	if b.in.push(msg) {
		b.loop.Post(b.processMessages)
	}
}

// processMessages drains commands on the worker loop. One message at a time:
// a lifecycle command must stop the drain the moment it is dispatched, and
// whatever is still queued must wait for the completion callback.
func (b *backend) processMessages() {
	if b.closed.Load() || b.blocking {
		return
	}
	for {
		msg, ok := b.in.takeFirst()
		if !ok {
			return
		}
		if !b.apply(msg) {
			b.blocking = true
			return
		}
		if b.closed.Load() {
			return
		}
	}
}

// apply dispatches one command to the worker. Returns false when the command
// is asynchronous at the worker boundary and the gate must close.
func (b *backend) apply(msg message) bool {
	switch m := msg.(type) {
	case startMessage:
		b.log.Debug("start")
		b.worker.ApplyDevices(m.devices)
		b.worker.ApplyCodecs(m.codecs)
		b.pendingStatus = true
		b.worker.Start()
		return false

	case stopMessage:
		b.log.Debug("stop")
		b.pendingStatus = true
		b.worker.Stop()
		return false

	case updateDevicesMessage:
		// Device changes apply in place and answer with no status.
		b.log.Debug("update devices")
		b.worker.ApplyDevices(m.devices)
		b.worker.Update()
		return true

	case updateCodecsMessage:
		b.log.Debug("update codecs")
		b.worker.ApplyCodecs(m.codecs)
		b.pendingStatus = true
		b.worker.Update()
		return false

	case transmitMessage:
		if m.transmit.UseAudio {
			b.worker.TransmitAudio(m.transmit.AudioIndex)
		} else {
			b.worker.PauseAudio()
		}
		if m.transmit.UseVideo {
			b.worker.TransmitVideo(m.transmit.VideoIndex)
		} else {
			b.worker.PauseVideo()
		}
		return true

	case recordMessage:
		if m.record.Enabled {
			b.worker.RecordStart()
		} else {
			b.worker.RecordStop()
		}
		return true
	}
	return true
}

// resume reopens the lifecycle gate after a completion callback and
// reschedules the drain if commands queued up while it was closed. Runs on
// the worker loop.
func (b *backend) resume() {
	if !b.blocking {
		return
	}
	b.blocking = false
	if b.in.resumeWake() {
		b.loop.Post(b.processMessages)
	}
}

// snapshot builds a Status event from the worker's current state. Runs on
// the worker loop.
func (b *backend) snapshot() Status {
	return b.worker.Snapshot()
}

// Completion callbacks. Workers may fire these from any goroutine, so each
// marshals onto the worker loop before touching gate state.

func (b *backend) workerStarted() {
	b.loop.Post(func() {
		if b.closed.Load() {
			return
		}
		b.pendingStatus = false
		b.front.postEvent(statusMessage{status: b.snapshot()})
		b.resume()
	})
}

func (b *backend) workerUpdated() {
	b.loop.Post(func() {
		if b.closed.Load() {
			return
		}
		// Workers tick updated on internal adjustments too; only a
		// pending Start/UpdateCodecs answers with a status.
		if b.pendingStatus {
			b.pendingStatus = false
			b.front.postEvent(statusMessage{status: b.snapshot()})
		}
		b.resume()
	})
}

func (b *backend) workerStopped() {
	b.loop.Post(func() {
		if b.closed.Load() {
			return
		}
		b.pendingStatus = false
		status := b.snapshot()
		status.Stopped = true
		b.front.postEvent(statusMessage{status: status})
		b.resume()
	})
}

func (b *backend) workerFinished() {
	b.loop.Post(func() {
		if b.closed.Load() {
			return
		}
		status := b.snapshot()
		status.Finished = true
		b.front.postEvent(statusMessage{status: status})
		b.resume()
	})
}

func (b *backend) workerError(code int) {
	b.loop.Post(func() {
		if b.closed.Load() {
			return
		}
		b.log.Errorf("worker error %d", code)
		status := b.snapshot()
		status.Error = true
		status.ErrorCode = code
		b.front.postEvent(statusMessage{status: status})
		b.resume()
	})
}

// Event callbacks. These go straight into the front inbox; the inbox mutex
// makes that safe from any goroutine, and coalescing happens on the caller
// side at drain time.

func (b *backend) workerAudioIntensity(level int) {
	b.front.postEvent(intensityMessage{value: level})
}

func (b *backend) workerPreviewFrame(frame *VideoFrame) {
	b.front.postEvent(frameMessage{kind: FramePreview, frame: frame})
}

func (b *backend) workerOutputFrame(frame *VideoFrame) {
	b.front.postEvent(frameMessage{kind: FrameOutput, frame: frame})
}
