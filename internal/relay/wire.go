package relay

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Frame layout: [u32 big-endian length][u8 tag][fields...]. The length covers
// the tag and fields. Strings are [u16 length][UTF-8 bytes]; string lists are
// [u16 count][string...].
const (
	MaxFrameSize = 64 * 1024
	frameHeader  = 4
)

// Client message tags.
const (
	tagSetUsername byte = 0x01
	tagGetRooms    byte = 0x02
	tagJoinRoom    byte = 0x03
	tagLeaveRoom   byte = 0x04
	tagSendChat    byte = 0x05
)

// Server event tags.
const (
	tagUsernameSet   byte = 0x81
	tagRooms         byte = 0x82
	tagJoinRoomReply byte = 0x83
	tagChatBroadcast byte = 0x84
	tagError         byte = 0x85
)

var (
	ErrFrameTooLarge  = errors.New("relay: frame exceeds maximum size")
	ErrEmptyFrame     = errors.New("relay: empty frame")
	ErrUnknownTag     = errors.New("relay: unknown message tag")
	ErrMalformedFrame = errors.New("relay: malformed frame")
	ErrUnencodable    = errors.New("relay: message cannot be encoded")
)

type frameWriter struct {
	buf bytes.Buffer
	err error
}

func newFrameWriter(tag byte) *frameWriter {
	w := &frameWriter{}
	w.buf.Write([]byte{0, 0, 0, 0})
	w.buf.WriteByte(tag)
	return w
}

func (w *frameWriter) u16(v uint16) {
	w.buf.Write(binary.BigEndian.AppendUint16(nil, v))
}

func (w *frameWriter) u32(v uint32) {
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
}

func (w *frameWriter) str(s string) {
	if len(s) > math.MaxUint16 {
		w.err = fmt.Errorf("%w: string of %d bytes", ErrUnencodable, len(s))
		return
	}
	w.u16(uint16(len(s)))
	w.buf.WriteString(s)
}

func (w *frameWriter) strs(list []string) {
	if len(list) > math.MaxUint16 {
		w.err = fmt.Errorf("%w: list of %d strings", ErrUnencodable, len(list))
		return
	}
	w.u16(uint16(len(list)))
	for _, s := range list {
		w.str(s)
	}
}

// bytes finalizes the frame and returns it with the length prefix filled in.
func (w *frameWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	frame := w.buf.Bytes()
	n := len(frame) - frameHeader
	if n > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	binary.BigEndian.PutUint32(frame[:frameHeader], uint32(n))
	return frame, nil
}

type frameReader struct {
	data []byte
	err  error
}

func (r *frameReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = fmt.Errorf("%w: truncated field", ErrMalformedFrame)
		return nil
	}
	out := r.data[:n]
	r.data = r.data[n:]
	return out
}

func (r *frameReader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *frameReader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *frameReader) str() string {
	n := r.u16()
	return string(r.take(int(n)))
}

func (r *frameReader) strs() []string {
	n := int(r.u16())
	if r.err != nil {
		return nil
	}
	out := make([]string, 0, min(n, 256))
	for range n {
		s := r.str()
		if r.err != nil {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// finish reports any decode error, including unread trailing bytes.
func (r *frameReader) finish() error {
	if r.err != nil {
		return r.err
	}
	if len(r.data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedFrame, len(r.data))
	}
	return nil
}

// readFrame reads one length-prefixed frame and returns its tag and body.
func readFrame(rd io.Reader) (byte, *frameReader, error) {
	var header [frameHeader]byte
	if _, err := io.ReadFull(rd, header[:]); err != nil {
		return 0, nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n == 0 {
		return 0, nil, ErrEmptyFrame
	}
	if n > MaxFrameSize {
		return 0, nil, ErrFrameTooLarge
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(rd, body); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, nil, err
	}
	return body[0], &frameReader{data: body[1:]}, nil
}

// EncodeClientMessage returns the wire frame for msg. Session ids are not
// transmitted; the server binds them per connection.
func EncodeClientMessage(msg ClientMessage) ([]byte, error) {
	var w *frameWriter
	switch m := msg.(type) {
	case SetUsernameMsg:
		w = newFrameWriter(tagSetUsername)
		w.str(m.Username)
	case GetRoomsMsg:
		w = newFrameWriter(tagGetRooms)
	case JoinRoomMsg:
		w = newFrameWriter(tagJoinRoom)
		w.str(m.Room)
	case LeaveRoomMsg:
		w = newFrameWriter(tagLeaveRoom)
	case SendChatMsg:
		w = newFrameWriter(tagSendChat)
		w.str(m.Message)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnencodable, msg)
	}
	return w.bytes()
}

// WriteClientMessage encodes msg and writes it to w.
func WriteClientMessage(w io.Writer, msg ClientMessage) error {
	frame, err := EncodeClientMessage(msg)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// ReadClientMessage reads and decodes one client frame.
func ReadClientMessage(rd io.Reader) (ClientMessage, error) {
	tag, r, err := readFrame(rd)
	if err != nil {
		return nil, err
	}

	var msg ClientMessage
	switch tag {
	case tagSetUsername:
		msg = SetUsernameMsg{Username: r.str()}
	case tagGetRooms:
		msg = GetRoomsMsg{}
	case tagJoinRoom:
		msg = JoinRoomMsg{Room: r.str()}
	case tagLeaveRoom:
		msg = LeaveRoomMsg{}
	case tagSendChat:
		msg = SendChatMsg{Message: r.str()}
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return msg, nil
}

// EncodeServerEvent returns the wire frame for evt.
func EncodeServerEvent(evt ServerEvent) ([]byte, error) {
	var w *frameWriter
	switch e := evt.(type) {
	case UsernameSetEvent:
		w = newFrameWriter(tagUsernameSet)
		w.str(e.Username)
	case RoomsEvent:
		w = newFrameWriter(tagRooms)
		w.strs(e.Rooms)
	case JoinRoomEvent:
		w = newFrameWriter(tagJoinRoomReply)
		w.str(e.Room)
		w.str(e.Err)
	case ChatBroadcastEvent:
		w = newFrameWriter(tagChatBroadcast)
		w.u32(e.Timestamp)
		w.str(e.Username)
		w.str(e.Room)
		w.str(e.Message)
	case ErrorEvent:
		w = newFrameWriter(tagError)
		w.str(e.Message)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnencodable, evt)
	}
	return w.bytes()
}

// WriteServerEvent encodes evt and writes it to w.
func WriteServerEvent(w io.Writer, evt ServerEvent) error {
	frame, err := EncodeServerEvent(evt)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// ReadServerEvent reads and decodes one server frame.
func ReadServerEvent(rd io.Reader) (ServerEvent, error) {
	tag, r, err := readFrame(rd)
	if err != nil {
		return nil, err
	}

	var evt ServerEvent
	switch tag {
	case tagUsernameSet:
		evt = UsernameSetEvent{Username: r.str()}
	case tagRooms:
		evt = RoomsEvent{Rooms: r.strs()}
	case tagJoinRoomReply:
		room := r.str()
		evt = JoinRoomEvent{Room: room, Err: r.str()}
	case tagChatBroadcast:
		ts := r.u32()
		user := r.str()
		room := r.str()
		evt = ChatBroadcastEvent{Timestamp: ts, Username: user, Room: room, Message: r.str()}
	case tagError:
		evt = ErrorEvent{Message: r.str()}
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return evt, nil
}
