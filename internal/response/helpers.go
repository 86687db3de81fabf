package response

import (
	"strconv"

	"github.com/Brownie44l1/pageserver/internal/headers"
)

// BadRequestReason is sent on the status line of every 400
const BadRequestReason = "Bad ass Request"

// OK wraps a page body with a 200 status and its Content-Length
func OK(body string) Page {
	h := headers.NewHeaders()
	h.Set("Content-Length", strconv.Itoa(len(body)))

	return Page{
		Status:  StatusOK,
		Reason:  StatusText(StatusOK),
		Headers: h.Format(),
		Body:    body,
	}
}

// NotFoundFallback serves the not-found document. It keeps the 200 status
// and sends no Content-Length.
func NotFoundFallback(body string) Page {
	return Page{
		Status: StatusOK,
		Reason: StatusText(StatusOK),
		Body:   body,
	}
}

// BadRequest is the response to a request line that could not be parsed
func BadRequest() Page {
	return Page{
		Status: StatusBadRequest,
		Reason: BadRequestReason,
	}
}

// InternalError is sent when a page could not be produced at all
func InternalError() Page {
	return Page{
		Status: StatusInternalServerError,
		Reason: StatusText(StatusInternalServerError),
	}
}
