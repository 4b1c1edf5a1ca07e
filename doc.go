// Package mediactl provides a bidirectional, asynchronous control channel
// between application code and a real-time RTP media worker running on its
// own event loop.
//
// Key pieces include:
//   - Control: the caller-side handle (start/stop/update/transmit/record)
//   - Worker: the contract a media pipeline engine implements
//   - Loop/Scheduler: the serialized executors that host each side
//   - Coalescing inboxes for frame and audio-intensity events
//
// # Architecture
//
//	caller goroutine            worker event loop
//	Control.Start() ───msg───▶  backend ──▶ Worker.Start()
//	observer callbacks ◀─msg──  backend ◀── worker completion/events
//
// Commands posted through Control never block: they are queued on the
// backend's inbox and applied on the worker loop one at a time. Start, Stop
// and UpdateCodecs are serialized by a lifecycle gate so that only one such
// operation is ever outstanding against the worker. Events flowing back are
// coalesced per drain: only the freshest preview frame, output frame and
// audio-intensity sample survive, while status messages keep arrival order.
//
// # Latency Path
//
// Inbound RTP packets (SubmitAudioPacket/SubmitVideoPacket) and the outbound
// packet/record-data callbacks bypass the message queues entirely and are
// forwarded synchronously. They carry real-time traffic and must not pay the
// cross-goroutine hand-off cost.
//
// # Threading
//
// Control methods are safe to call from any goroutine. Observer callbacks
// fire on the caller-side Scheduler; the raw packet and record-data slots
// fire on whatever goroutine the Worker emits from.
package mediactl
