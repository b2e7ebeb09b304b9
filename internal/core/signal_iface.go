package core

// Frame is one encoded outbound message.
type Frame []byte

// SignalConnection abstracts the message transport of one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues f without blocking. It fails when the queue is full
	// or the connection is gone.
	TrySend(Frame) error
	Close()
}
