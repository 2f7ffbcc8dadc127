package capture

// Device defines the interface for capture devices (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Samples() <-chan Sample
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
