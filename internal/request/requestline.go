package request

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedRequestLine = fmt.Errorf("%w: request line needs method, uri and version", ErrMalformed)
	ErrInvalidVersion       = fmt.Errorf("%w: invalid HTTP version", ErrMalformed)
)

const versionPrefix = "HTTP/"

// parseRequestLine parses: METHOD URI HTTP/VERSION
// Tokens are separated by single spaces; anything after the third token is ignored.
func parseRequestLine(line string) (string, string, float64, error) {
	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return "", "", 0, ErrMalformedRequestLine
	}

	method := parts[0]
	uri := parts[1]

	version, err := parseVersion(parts[2])
	if err != nil {
		return "", "", 0, err
	}

	return method, uri, version, nil
}

// parseVersion reads the numeric part of an "HTTP/x.y" token
func parseVersion(token string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(token, versionPrefix), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidVersion, token)
	}
	return v, nil
}
