package protocol

// PositionMapper translates between byte offsets, rune offsets and LSP
// positions for one snapshot of document text. LSP characters count UTF-16
// code units, so every conversion goes through a per-line index built once
// at construction.
//
// Offsets outside the document clamp to its edges; a position past the last
// line maps to the end of the text.
type PositionMapper struct {
	text  string
	lines []lineSpan
}

// lineSpan records one line's extent in each coordinate space. Spans
// exclude the trailing newline.
type lineSpan struct {
	byteStart int
	runeStart int
	byteLen   int
	runeLen   int
}

// NewPositionMapper indexes text. The empty string has one empty line.
func NewPositionMapper(text string) *PositionMapper {
	m := &PositionMapper{text: text}

	byteStart, runeStart, runeOff := 0, 0, 0
	for i, r := range text {
		if r == '\n' {
			m.lines = append(m.lines, lineSpan{
				byteStart: byteStart,
				runeStart: runeStart,
				byteLen:   i - byteStart,
				runeLen:   runeOff - runeStart,
			})
			byteStart = i + 1
			runeStart = runeOff + 1
		}
		runeOff++
	}
	m.lines = append(m.lines, lineSpan{
		byteStart: byteStart,
		runeStart: runeStart,
		byteLen:   len(text) - byteStart,
		runeLen:   runeOff - runeStart,
	})
	return m
}

// LineCount returns the number of lines.
func (m *PositionMapper) LineCount() int { return len(m.lines) }

// Line returns the text of line n without its newline, or "" when n is out
// of range.
func (m *PositionMapper) Line(n int) string {
	if n < 0 || n >= len(m.lines) {
		return ""
	}
	span := m.lines[n]
	return m.text[span.byteStart : span.byteStart+span.byteLen]
}

// lineAtByte finds the line containing the (clamped) byte offset.
func (m *PositionMapper) lineAtByte(off int) int {
	for i, span := range m.lines {
		if off < span.byteStart+span.byteLen+1 {
			return i
		}
	}
	return len(m.lines) - 1
}

// PositionForByte converts a byte offset to an LSP position.
func (m *PositionMapper) PositionForByte(off int) Position {
	if off < 0 {
		return Position{}
	}
	n := m.lineAtByte(off)
	span := m.lines[n]

	in := off - span.byteStart
	if in > span.byteLen {
		in = span.byteLen
	}
	line := m.Line(n)

	var u uint32
	for i, r := range line {
		if i >= in {
			break
		}
		u += utf16Width(r)
	}
	return Position{Line: uint32(n), Character: u}
}

// ByteForPosition converts an LSP position to a byte offset.
func (m *PositionMapper) ByteForPosition(p Position) int {
	if int(p.Line) >= len(m.lines) {
		return len(m.text)
	}
	span := m.lines[p.Line]
	line := m.Line(int(p.Line))

	var u uint32
	for i, r := range line {
		if u >= p.Character {
			return span.byteStart + i
		}
		u += utf16Width(r)
	}
	return span.byteStart + span.byteLen
}

// PositionForRune converts a rune offset to an LSP position.
func (m *PositionMapper) PositionForRune(off int) Position {
	if off < 0 {
		return Position{}
	}
	n := len(m.lines) - 1
	for i, span := range m.lines {
		end := span.runeStart + span.runeLen
		if i < len(m.lines)-1 {
			end++ // the newline belongs to this line
		}
		if off < end {
			n = i
			break
		}
	}
	span := m.lines[n]

	in := off - span.runeStart
	if in > span.runeLen {
		in = span.runeLen
	}

	var u uint32
	runes := 0
	for _, r := range m.Line(n) {
		if runes >= in {
			break
		}
		u += utf16Width(r)
		runes++
	}
	return Position{Line: uint32(n), Character: u}
}

// RuneForPosition converts an LSP position to a rune offset.
func (m *PositionMapper) RuneForPosition(p Position) int {
	if int(p.Line) >= len(m.lines) {
		last := m.lines[len(m.lines)-1]
		return last.runeStart + last.runeLen
	}
	span := m.lines[p.Line]

	var u uint32
	runes := 0
	for _, r := range m.Line(int(p.Line)) {
		if u >= p.Character {
			break
		}
		u += utf16Width(r)
		runes++
	}
	return span.runeStart + runes
}

// RangeForBytes converts a byte-offset pair to an LSP range.
func (m *PositionMapper) RangeForBytes(start, end int) Range {
	return Range{Start: m.PositionForByte(start), End: m.PositionForByte(end)}
}

// BytesForRange converts an LSP range to a byte-offset pair.
func (m *PositionMapper) BytesForRange(r Range) (start, end int) {
	return m.ByteForPosition(r.Start), m.ByteForPosition(r.End)
}

// utf16Width returns the UTF-16 code-unit count of r.
func utf16Width(r rune) uint32 {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
