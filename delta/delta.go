// Package delta assembles an LCS trace over two chunk tables into an
// ordered sequence of reuse/literal segments, and provides the
// line-oriented text encoding of that sequence.
package delta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/trezbouchez/differ/chunktable"
	"github.com/trezbouchez/differ/lcs"
)

// Kind distinguishes a Reuse segment from a Literal one.
type Kind int

const (
	Reuse Kind = iota
	Literal
)

func (k Kind) String() string {
	if k == Reuse {
		return "REUSE"
	}
	return "LITERAL"
}

// Segment is one instruction of a Delta. For Reuse, Offset is the
// starting byte offset into the old stream; for Literal, Offset is the
// starting byte offset into the new stream. Length is always in bytes
// and always > 0.
type Segment struct {
	Kind   Kind
	Offset int64
	Length int
}

// Delta is the ordered plan reconstructing the new stream from byte
// ranges of the old one plus literal byte ranges of the new one. It
// carries offsets and lengths only, never the bytes themselves.
type Delta struct {
	Segments []Segment
}

// Stats summarizes a Delta's bandwidth characteristics.
type Stats struct {
	ReuseSegments   int
	LiteralSegments int
	ReusedBytes     int64
	LiteralBytes    int64
}

// Stats computes summary counters over the Delta's segments.
func (d *Delta) Stats() Stats {
	var s Stats
	for _, seg := range d.Segments {
		switch seg.Kind {
		case Reuse:
			s.ReuseSegments++
			s.ReusedBytes += int64(seg.Length)
		case Literal:
			s.LiteralSegments++
			s.LiteralBytes += int64(seg.Length)
		}
	}
	return s
}

// Assemble walks trace in order against the sealed old and new chunk
// tables, emitting Literal segments for any gap in new-stream coverage
// and one Reuse segment per trace pair, per §4.6 of the design.
func Assemble(oldTable, newTable *chunktable.Table, trace lcs.Trace) (*Delta, error) {
	d := &Delta{}

	var cursor int64
	for _, pair := range trace {
		if pair.I < 0 || pair.I >= oldTable.Len() {
			return nil, fmt.Errorf("delta: trace old-index %d out of range [0,%d)", pair.I, oldTable.Len())
		}
		if pair.J < 0 || pair.J >= newTable.Len() {
			return nil, fmt.Errorf("delta: trace new-index %d out of range [0,%d)", pair.J, newTable.Len())
		}

		nc := newTable.At(pair.J)
		if cursor < nc.Offset {
			d.Segments = append(d.Segments, Segment{Kind: Literal, Offset: cursor, Length: int(nc.Offset - cursor)})
		}

		oc := oldTable.At(pair.I)
		d.Segments = append(d.Segments, Segment{Kind: Reuse, Offset: oc.Offset, Length: oc.Length})

		cursor = nc.End()
	}

	if total := newTable.TotalLength(); cursor < total {
		d.Segments = append(d.Segments, Segment{Kind: Literal, Offset: cursor, Length: int(total - cursor)})
	}

	return d, nil
}

// Encode writes the Delta in its external text form, one segment per
// line: "REUSE <old_offset> <length>" or "LITERAL <new_offset>
// <length>", in order.
func (d *Delta) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, seg := range d.Segments {
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", seg.Kind, seg.Offset, seg.Length); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses the external text form produced by Encode.
func Decode(r io.Reader) (*Delta, error) {
	d := &Delta{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("delta: malformed line %q", line)
		}

		var kind Kind
		switch fields[0] {
		case "REUSE":
			kind = Reuse
		case "LITERAL":
			kind = Literal
		default:
			return nil, fmt.Errorf("delta: unknown segment kind %q", fields[0])
		}

		var offset int64
		var length int
		if _, err := fmt.Sscanf(fields[1], "%d", &offset); err != nil {
			return nil, fmt.Errorf("delta: bad offset in %q: %w", line, err)
		}
		if _, err := fmt.Sscanf(fields[2], "%d", &length); err != nil {
			return nil, fmt.Errorf("delta: bad length in %q: %w", line, err)
		}

		d.Segments = append(d.Segments, Segment{Kind: kind, Offset: offset, Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
