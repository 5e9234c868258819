// Package input decodes raw terminal bytes into per-frame key and mouse state.
package input

import (
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses, so held keys are inferred from auto-repeat.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	// Held keys
	Left   bool
	Right  bool
	Thrust bool

	// Pressed this frame
	Fire      bool
	Enter     bool
	Escape    bool
	Interrupt bool // Ctrl-C

	Clicks  []Click
	Pressed []byte // Raw bytes read this frame
	Closed  bool   // The input stream has ended
}

// MouseButton identifies a clicked button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// Click is a mouse button press at a 1-based terminal cell.
type Click struct {
	Col    int
	Row    int
	Button MouseButton
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left   time.Time
	right  time.Time
	thrust time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.decode(buf, time.Now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held keys, so a key held on one screen does not
// carry over into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// decode parses the bytes of one frame and builds the input at time now.
func (s *Stream) decode(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if n, click, ok := parseSGRMouse(buf[i:]); n > 0 {
				if ok {
					in.Clicks = append(in.Clicks, click)
				}
				i += n - 1
				continue
			}

			// CSI sequence: ESC [ <code>
			if i+2 < len(buf) {
				switch buf[i+2] {
				case 'A': // Up arrow
					s.state.thrust = now
					i += 2
					continue
				case 'C': // Right arrow
					s.state.right = now
					i += 2
					continue
				case 'D': // Left arrow
					s.state.left = now
					i += 2
					continue
				case 'B': // Down arrow, unused
					i += 2
					continue
				}
			}

			// Unknown or truncated sequence, not a lone Escape.
			i++
			continue
		}

		switch b {
		case 'a', 'A', 'h':
			s.state.left = now
		case 'd', 'D', 'l':
			s.state.right = now
		case 'w', 'W', 'k':
			s.state.thrust = now
		case ' ':
			in.Fire = true
		case '\n', '\r':
			in.Enter = true
		case '\x1b', 'q', 'Q':
			in.Escape = true
		case '\x03':
			in.Interrupt = true
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Thrust = now.Sub(s.state.thrust) < keyHoldDuration
	return in
}

// parseSGRMouse parses an SGR (1006) mouse report "ESC [ < b ; x ; y M|m" at
// the start of buf. n is the sequence length, or 0 when buf does not start
// with a complete report. ok is true only for button presses.
func parseSGRMouse(buf []byte) (n int, click Click, ok bool) {
	if len(buf) < 3 || buf[0] != '\x1b' || buf[1] != '[' || buf[2] != '<' {
		return 0, Click{}, false
	}

	var fields [3]int
	field := 0
	digits := 0
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || field == 2 {
				return 0, Click{}, false
			}
			field++
			digits = 0
		case c == 'M' || c == 'm':
			if digits == 0 || field != 2 {
				return 0, Click{}, false
			}
			n = i + 1
			code := fields[0]
			// Releases, motion and wheel events are consumed but ignored.
			if c == 'm' || code&(32|64) != 0 {
				return n, Click{}, false
			}
			return n, Click{Col: fields[1], Row: fields[2], Button: MouseButton(code & 3)}, true
		default:
			return 0, Click{}, false
		}
	}
	return 0, Click{}, false
}
