package core

// Frame is a raw signaling payload, already encoded for the wire.
type Frame []byte

// ConnID is the opaque handle for one live socket. It is minted by the
// transport on accept and never reused for another socket.
type ConnID string

// SignalConnection abstracts a member's outbound signaling channel.
// Owned by the adapter; the adapter must Close() it. TrySend must not
// block: a full or closed channel is the recipient's problem, never the
// broadcaster's.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
