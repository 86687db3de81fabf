package response

import "fmt"

// Format renders a complete response:
//
//	HTTP/1.1 {status} {reason}\r\n{headerBlock}\r\n\r\n{body}
//
// Nothing is validated; the header block is inserted verbatim.
func Format(status StatusCode, reason, headerBlock, body string) string {
	return fmt.Sprintf("HTTP/1.1 %d %s\r\n%s\r\n\r\n%s", status, reason, headerBlock, body)
}

// Page is a resolved response waiting to be written
type Page struct {
	Status  StatusCode
	Reason  string
	Headers string // formatted header block, possibly empty
	Body    string
}

// String returns the page in wire format
func (p Page) String() string {
	return Format(p.Status, p.Reason, p.Headers, p.Body)
}
