package ir

import "math"

// Position is the line and column a statement starts at. Both are 1-based.
//
// Positions are stored in the narrowest integer width that fits both values;
// the three encodings behave identically.
type Position interface {
	Line() int
	Column() int
}

type pos8 struct{ line, col uint8 }
type pos16 struct{ line, col uint16 }
type pos32 struct{ line, col uint32 }

func (p pos8) Line() int    { return int(p.line) }
func (p pos8) Column() int  { return int(p.col) }
func (p pos16) Line() int   { return int(p.line) }
func (p pos16) Column() int { return int(p.col) }
func (p pos32) Line() int   { return int(p.line) }
func (p pos32) Column() int { return int(p.col) }

// NewPosition picks the compact encoding for line and col.
func NewPosition(line, col int) Position {
	switch {
	case line <= math.MaxUint8 && col <= math.MaxUint8:
		return pos8{uint8(line), uint8(col)}
	case line <= math.MaxUint16 && col <= math.MaxUint16:
		return pos16{uint16(line), uint16(col)}
	default:
		return pos32{uint32(line), uint32(col)}
	}
}
