package response

import (
	"errors"
	"io"
)

var ErrAlreadyWritten = errors.New("response already written")

type writerState int

const (
	stateStart writerState = iota
	stateWritten
)

// Writer writes a single page to an io.Writer
type Writer struct {
	w          io.Writer
	state      writerState
	statusCode StatusCode
	written    int
	hadError   bool
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WritePage writes the page in wire format. A page can only be written once.
func (w *Writer) WritePage(p Page) error {
	if w.state != stateStart {
		return ErrAlreadyWritten
	}
	w.state = stateWritten
	w.statusCode = p.Status

	n, err := io.WriteString(w.w, p.String())
	w.written = n
	if err != nil {
		w.hadError = true
		return err
	}
	return nil
}

func (w *Writer) HadError() bool {
	return w.hadError
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}

// BytesWritten reports how much of the page reached the underlying writer
func (w *Writer) BytesWritten() int {
	return w.written
}
