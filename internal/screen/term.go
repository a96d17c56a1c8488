package screen

import (
	"golang.org/x/sys/unix"
)

// terminalState holds the termios settings to restore on shutdown.
type terminalState struct {
	termios unix.Termios
}

// enterRawMode disables input echo and line buffering and makes reads
// non-blocking, returning the previous settings.
func enterRawMode(fd int) (*terminalState, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}
	state := &terminalState{termios: *termios}

	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, termios); err != nil {
		return nil, err
	}
	return state, nil
}

// restoreMode reapplies the terminal settings saved by enterRawMode.
func restoreMode(fd int, state *terminalState) error {
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &state.termios)
}
