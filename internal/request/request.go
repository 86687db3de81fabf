package request

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/Brownie44l1/pageserver/internal/headers"
)

// ErrMalformed is wrapped by every parse failure
var ErrMalformed = errors.New("malformed request")

// Request is a single request read from one connection buffer
type Request struct {
	Method      string
	URI         string
	HTTPVersion float64
	Headers     *headers.Headers
	Body        string
}

// Parse builds a Request from a raw connection buffer. The buffer may be a
// truncated request and may carry trailing NUL padding.
//
// Only the request line is mandatory. The single line following the first
// blank line becomes the body. Every other line, the body line included, is
// offered to the header set, so "Name: value" lines after the blank line are
// still stored as headers.
func Parse(buf []byte) (*Request, error) {
	lines := splitLines(strings.TrimRight(decodeLossy(buf), "\x00"))

	var requestLine string
	if len(lines) > 0 {
		requestLine = lines[0]
	}

	method, uri, version, err := parseRequestLine(requestLine)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:      method,
		URI:         uri,
		HTTPVersion: version,
		Headers:     headers.NewHeaders(),
	}

	rest := lines[min(1, len(lines)):]
	sawBlank := false
	for i, line := range rest {
		if line == "" {
			if !sawBlank && i+1 < len(rest) {
				req.Body = cleanBody(rest[i+1])
			}
			sawBlank = true
			continue
		}
		req.Headers.ParseLine(line)
	}

	return req, nil
}

// decodeLossy turns buf into text, replacing invalid UTF-8 with U+FFFD
func decodeLossy(buf []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(buf)
	if err != nil {
		return strings.ToValidUTF8(string(buf), "\uFFFD")
	}
	return string(out)
}

// splitLines splits on '\n', drops a trailing '\r' from each line and
// ignores the empty remainder after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func cleanBody(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "\x00", ""))
}
