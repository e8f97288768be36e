// Package input turns raw terminal bytes into key presses and tracks which
// keys are held and in what order they went down.
package input

import (
	"bufio"
	"time"
)

// Frame is the input gathered since the previous read.
type Frame struct {
	Keys    []Key  // decoded key-downs, in arrival order
	Quit    bool   // q or Q
	Pressed []byte // raw bytes, for activity tracking
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// Closed reports whether the underlying reader has hit an error or EOF.
func (s *Stream) Closed() bool {
	return s.closed
}

// Read drains all available bytes from the stream (non-blocking) and decodes them.
func (s *Stream) Read() Frame {
	var buf []byte

drain:
	for {
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

	return Decode(buf)
}

// ReadInto drains the stream and presses every decoded key on t.
func (s *Stream) ReadInto(t *Tracker, now time.Time) Frame {
	f := s.Read()
	for _, k := range f.Keys {
		t.Press(k, now)
	}
	t.Expire(now)
	return f
}

// Decode parses a chunk of terminal input. CSI arrow sequences become arrow
// keys, letters are folded to lowercase.
func Decode(buf []byte) Frame {
	f := Frame{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := arrowKey(buf[i+2]); ok {
				f.Keys = append(f.Keys, k)
				i += 2
				continue
			}
		}

		k, ok := byteKey(b)
		if !ok {
			continue
		}
		if k == "q" {
			f.Quit = true
		}
		f.Keys = append(f.Keys, k)
	}

	return f
}

func arrowKey(code byte) (Key, bool) {
	switch code {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	}
	return "", false
}

func byteKey(b byte) (Key, bool) {
	switch {
	case b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return Key(string(rune(b))), true
	case b >= 'A' && b <= 'Z':
		return Key(string(rune(b - 'A' + 'a'))), true
	case b == ' ':
		return KeySpace, true
	case b == '\n' || b == '\r':
		return KeyEnter, true
	case b == '\b' || b == '\x7f':
		return KeyBackspace, true
	case b == '\x1b':
		return KeyEscape, true
	}
	return "", false
}
