package directive

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

const maxLineSize = 1 << 20

// Stats summarises a processed stream.
type Stats struct {
	Directives int
	Errors     int
	Lines      int
}

// ScanDirectives is a bufio.SplitFunc yielding lines separated by any run of
// CR and LF bytes. Empty lines are never produced.
func ScanDirectives(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isLineBreak(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		if isLineBreak(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isLineBreak(b byte) bool {
	return b == '\r' || b == '\n'
}

// ReadLines reads every directive line from r.
func ReadLines(r io.Reader) ([]string, error) {
	sc := newScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read directives: %w", err)
	}
	return lines, nil
}

// Run executes every directive read from r and writes the CRLF terminated
// responses to w.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)
	sc := newScanner(r)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		out, ok := d.Execute(sc.Text())
		if !ok {
			continue
		}
		stats.record(out)
		if err := WriteLines(bw, out.Lines); err != nil {
			return stats, err
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("failed to read directives: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write transcript: %w", err)
	}

	d.logger.Info("directives processed",
		"directives", stats.Directives,
		"errors", stats.Errors,
		"lines", stats.Lines,
	)
	return stats, nil
}

// ExecuteAll runs lines in order and returns the output lines without
// terminators.
func (d *Dispatcher) ExecuteAll(lines []string) ([]string, Stats) {
	var stats Stats
	var output []string
	for _, line := range lines {
		out, ok := d.Execute(line)
		if !ok {
			continue
		}
		stats.record(out)
		output = append(output, out.Lines...)
	}
	return output, stats
}

func (s *Stats) record(out Outcome) {
	s.Directives++
	if out.Err != nil {
		s.Errors++
	}
	s.Lines += len(out.Lines)
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(ScanDirectives)
	return sc
}

// WriteLines writes each line followed by LineEnding.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+LineEnding); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	}
	return nil
}
