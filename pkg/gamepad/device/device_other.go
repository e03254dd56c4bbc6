//go:build !linux
// +build !linux

package device

// Open always fails: only the Linux joystick API is supported.
func Open(path string, index int) (Device, error) {
	return nil, ErrUnsupported
}
