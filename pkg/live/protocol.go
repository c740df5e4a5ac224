package live

import (
	"encoding/binary"

	"github.com/amantus-ai/cast/pkg/cell"
	"github.com/amantus-ai/cast/pkg/color"
)

// frameMagic identifies a binary grid frame on the wire.
var frameMagic = [4]byte{'C', 'A', 'S', 'T'}

// frameVersion is bumped whenever the wire layout below changes incompatibly.
const frameVersion = 1

// headerSize is the fixed-size binary frame header (spec §4.14): magic, version, cols, rows,
// cursor x/y, cell count, and trailing reserved padding, mirroring a wire framing
// BufferSnapshot.SerializeToBinary layout but carrying this package's richer StyledCell/Color
// model instead of a packed uint32 fg/bg.
const headerSize = 32

// cellSize is the fixed per-cell wire encoding: a 4-byte rune, a 4-byte fg color, a 4-byte bg
// color, and a 1-byte attribute bitmask.
const cellSize = 13

// EncodeFrame serializes a grid snapshot into one binary frame: the fixed header followed by
// Width*Height cells in row-major order.
func EncodeFrame(g cell.GridSnapshot) []byte {
	buf := make([]byte, headerSize+len(g.Cells)*cellSize)

	copy(buf[0:4], frameMagic[:])
	buf[4] = frameVersion
	binary.BigEndian.PutUint16(buf[8:10], uint16(g.Width))
	binary.BigEndian.PutUint16(buf[10:12], uint16(g.Height))
	binary.BigEndian.PutUint16(buf[12:14], uint16(g.CursorX))
	binary.BigEndian.PutUint16(buf[14:16], uint16(g.CursorY))
	binary.BigEndian.PutUint32(buf[16:20], uint32(len(g.Cells)))

	off := headerSize
	for _, c := range g.Cells {
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(c.Glyph))
		encodeColor(buf[off+4:off+8], c.Fg)
		encodeColor(buf[off+8:off+12], c.Bg)
		buf[off+12] = byte(c.Attrs)
		off += cellSize
	}
	return buf
}

func encodeColor(dst []byte, c color.Color) {
	dst[0] = byte(c.Kind)
	switch c.Kind {
	case color.KindRGB:
		dst[1], dst[2], dst[3] = c.R, c.G, c.B
	default:
		dst[1] = c.Index
		dst[2], dst[3] = 0, 0
	}
}

func decodeColor(src []byte) color.Color {
	kind := color.Kind(src[0])
	switch kind {
	case color.KindRGB:
		return color.RGB(src[1], src[2], src[3])
	case color.KindAnsi16:
		return color.Ansi16(int(src[1]))
	case color.KindPalette256:
		return color.Palette256(int(src[1]))
	default:
		return color.Default
	}
}

// DecodeFrame is the inverse of EncodeFrame, used by tests to verify the wire format round-trips.
func DecodeFrame(buf []byte) (cell.GridSnapshot, bool) {
	if len(buf) < headerSize || string(buf[0:4]) != string(frameMagic[:]) {
		return cell.GridSnapshot{}, false
	}
	width := int(binary.BigEndian.Uint16(buf[8:10]))
	height := int(binary.BigEndian.Uint16(buf[10:12]))
	cursorX := int(binary.BigEndian.Uint16(buf[12:14]))
	cursorY := int(binary.BigEndian.Uint16(buf[14:16]))
	count := int(binary.BigEndian.Uint32(buf[16:20]))

	if count != width*height || len(buf) < headerSize+count*cellSize {
		return cell.GridSnapshot{}, false
	}

	cells := make([]cell.StyledCell, count)
	off := headerSize
	for i := range cells {
		r := rune(binary.BigEndian.Uint32(buf[off : off+4]))
		fg := decodeColor(buf[off+4 : off+8])
		bg := decodeColor(buf[off+8 : off+12])
		attrs := cell.Style(buf[off+12])
		cells[i] = cell.StyledCell{Glyph: r, Fg: fg, Bg: bg, Attrs: attrs}
		off += cellSize
	}

	return cell.GridSnapshot{
		Width: width, Height: height,
		CursorX: cursorX, CursorY: cursorY,
		Cells: cells,
	}, true
}
