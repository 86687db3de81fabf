package pages

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Brownie44l1/pageserver/internal/request"
	"github.com/Brownie44l1/pageserver/internal/response"
)

const pageSuffix = ".html"

var (
	// ErrNotFoundPage means the not-found document cannot be served, which
	// leaves the resolver without a fallback.
	ErrNotFoundPage = errors.New("not-found page unavailable")

	errInvalidText = errors.New("page is not valid UTF-8")
)

// Resolver maps request URIs to documents and builds the response for them
type Resolver struct {
	fs       Filesystem
	index    string
	notFound string
}

// NewResolver checks that the not-found document can be read before any
// request depends on it.
func NewResolver(fsys Filesystem, index, notFound string) (*Resolver, error) {
	r := &Resolver{
		fs:       fsys,
		index:    index,
		notFound: notFound,
	}

	if _, err := r.readText(notFound); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFoundPage, notFound, err)
	}
	return r, nil
}

// PagePath returns the document name for a request URI
func (r *Resolver) PagePath(uri string) string {
	if uri == "/" {
		return r.index
	}
	if strings.Contains(uri, pageSuffix) {
		return uri
	}
	return uri + pageSuffix
}

// Respond parses buf and returns the page to send back. The only error is a
// wrapped ErrNotFoundPage, when neither the requested document nor the
// not-found document can be read.
func (r *Resolver) Respond(buf []byte) (response.Page, error) {
	req, err := request.Parse(buf)
	if err != nil {
		return response.BadRequest(), nil
	}

	body, err := r.readText(r.PagePath(req.URI))
	if err == nil {
		return response.OK(body), nil
	}

	body, err = r.readText(r.notFound)
	if err != nil {
		return response.Page{}, fmt.Errorf("%w: %s: %v", ErrNotFoundPage, r.notFound, err)
	}
	return response.NotFoundFallback(body), nil
}

// ResolvePage returns the full wire-format response for buf
func (r *Resolver) ResolvePage(buf []byte) (string, error) {
	page, err := r.Respond(buf)
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

func (r *Resolver) readText(name string) (string, error) {
	data, err := r.fs.ReadFile(name)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidText
	}
	return string(data), nil
}
