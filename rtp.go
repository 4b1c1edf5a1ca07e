package mediactl

import (
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

// Re-export pion/rtp types for convenience
type (
	// RTPPacket is an alias to pion's rtp.Packet
	RTPPacket = rtp.Packet

	// RTPHeader is an alias to pion's rtp.Header
	RTPHeader = rtp.Header
)

// Re-export pion's codec description types. Payload info negotiated through
// CodecConfig/Status uses the same shapes the rest of the pion stack speaks.
type (
	// CodecParameters is an alias to pion's webrtc.RTPCodecParameters
	CodecParameters = webrtc.RTPCodecParameters

	// CodecCapability is an alias to pion's webrtc.RTPCodecCapability
	CodecCapability = webrtc.RTPCodecCapability

	// RTPCodecType is an alias to pion's webrtc.RTPCodecType
	RTPCodecType = webrtc.RTPCodecType
)

const (
	RTPCodecTypeUnknown = webrtc.RTPCodecTypeUnknown
	RTPCodecTypeAudio   = webrtc.RTPCodecTypeAudio
	RTPCodecTypeVideo   = webrtc.RTPCodecTypeVideo
)
