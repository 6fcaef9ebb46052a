package parsers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Entries splits `r` into lines, and each line into comma separated entries.
//
// Empty entries are skipped, and comments are stripped.
func Entries(r io.Reader) SeriesParser[string] {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	return &entries{scanner: scanner}
}

type entries struct {
	scanner *bufio.Scanner
	lineNo  uint
	pending []string
}

func (e *entries) Position() string {
	return fmt.Sprintf("line %d", e.lineNo)
}

func (e *entries) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", NewNonResumableError(err)
		}

		for len(e.pending) > 0 {
			entry := strings.TrimSpace(e.pending[0])
			e.pending = e.pending[1:]

			if len(entry) != 0 {
				return entry, nil
			}
		}

		if !e.scanner.Scan() {
			break
		}

		e.lineNo++

		text := strings.TrimSpace(e.scanner.Text())

		if idx := strings.IndexRune(text, '#'); idx != -1 {
			if idx == 0 {
				continue // commented line
			}

			// end of line comment
			text = strings.TrimRightFunc(text[:idx], unicode.IsSpace)
		}

		e.pending = strings.Split(text, ",")
	}

	if err := e.scanner.Err(); err != nil {
		// bufio.Scanner does not support continuing after an error
		return "", NewNonResumableError(err)
	}

	return "", NewNonResumableError(io.EOF)
}
