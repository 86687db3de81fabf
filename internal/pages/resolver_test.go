package pages

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/pageserver/internal/response"
)

const (
	indexHTML    = "<h1>Home</h1>"
	aboutHTML    = "<h1>About</h1>"
	notFoundHTML = "<h1>404 Not Found</h1>"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":      {Data: []byte(indexHTML)},
		"about.html":      {Data: []byte(aboutHTML)},
		"docs/guide.html": {Data: []byte("<p>guide</p>")},
		"café.html":       {Data: []byte("<p>café ☕</p>")},
		"binary.html":     {Data: []byte{0xff, 0xfe, 0x00}},
		"404.html":        {Data: []byte(notFoundHTML)},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(FS{FS: testFS()}, "index.html", "404.html")
	require.NoError(t, err)
	return r
}

func get(uri string) []byte {
	return []byte("GET " + uri + " HTTP/1.1\r\nHost: 127.0.0.1:3000\r\n\r\n")
}

func TestPagePath(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, "index.html", r.PagePath("/"))
	assert.Equal(t, "/about.html", r.PagePath("/about"))
	assert.Equal(t, "/about.html", r.PagePath("/about.html"))
	assert.Equal(t, "/docs/guide.html", r.PagePath("/docs/guide"))
	// the suffix check is a substring match
	assert.Equal(t, "/a.html.bak", r.PagePath("/a.html.bak"))
	assert.Equal(t, "/style.css.html", r.PagePath("/style.css"))
}

func TestResolveIndex(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.ResolvePage(get("/"))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 13\r\n\r\n"+indexHTML, got)
}

func TestResolveNestedPage(t *testing.T) {
	r := newTestResolver(t)

	page, err := r.Respond(get("/docs/guide"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusOK, page.Status)
	assert.Equal(t, "<p>guide</p>", page.Body)

	page, err = r.Respond(get("/about.html"))
	require.NoError(t, err)
	assert.Equal(t, aboutHTML, page.Body)
}

func TestResolveContentLengthCountsBytes(t *testing.T) {
	r := newTestResolver(t)

	page, err := r.Respond(get("/café"))
	require.NoError(t, err)
	assert.Equal(t, "<p>café ☕</p>", page.Body)
	assert.Equal(t, "Content-Length: 16", page.Headers)
}

func TestResolveNotFoundFallback(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.ResolvePage(get("/not-found"))
	require.NoError(t, err)

	// the fallback keeps a 200 status and carries no Content-Length
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n\r\n"+notFoundHTML, got)
}

func TestResolveInvalidUTF8FallsBack(t *testing.T) {
	r := newTestResolver(t)

	page, err := r.Respond(get("/binary"))
	require.NoError(t, err)
	assert.Equal(t, response.NotFoundFallback(notFoundHTML), page)
}

func TestResolveMalformedRequest(t *testing.T) {
	r := newTestResolver(t)

	for _, buf := range [][]byte{
		nil,
		make([]byte, 1024),
		[]byte("GET /\r\n\r\n"),
		[]byte("GET / HTTP/x.y\r\n\r\n"),
	} {
		got, err := r.ResolvePage(buf)
		require.NoError(t, err)
		assert.Equal(t, "HTTP/1.1 400 Bad ass Request\r\n\r\n\r\n", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.ResolvePage(get("/about"))
	require.NoError(t, err)
	second, err := r.ResolvePage(get("/about"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewResolverRequiresNotFoundPage(t *testing.T) {
	fsys := testFS()
	delete(fsys, "404.html")

	_, err := NewResolver(FS{FS: fsys}, "index.html", "404.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFoundPage)

	// an unreadable not-found page is as bad as a missing one
	fsys["404.html"] = &fstest.MapFile{Data: []byte{0xc3, 0x28}}
	_, err = NewResolver(FS{FS: fsys}, "index.html", "404.html")
	assert.ErrorIs(t, err, ErrNotFoundPage)
}

func TestResolveNotFoundPageRemovedAtRuntime(t *testing.T) {
	fsys := testFS()
	r, err := NewResolver(FS{FS: fsys}, "index.html", "404.html")
	require.NoError(t, err)

	delete(fsys, "404.html")

	// existing pages keep working
	page, err := r.Respond(get("/"))
	require.NoError(t, err)
	assert.Equal(t, indexHTML, page.Body)

	_, err = r.ResolvePage(get("/missing"))
	assert.ErrorIs(t, err, ErrNotFoundPage)

	// malformed requests never touch the filesystem
	page, err = r.Respond([]byte("bad"))
	require.NoError(t, err)
	assert.Equal(t, response.BadRequest(), page)
}

func TestDirFilesystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "blog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(indexHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "404.html"), []byte(notFoundHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blog", "post.html"), []byte("post"), 0o644))

	r, err := NewResolver(Dir(root), "index.html", "404.html")
	require.NoError(t, err)

	got, err := r.ResolvePage(get("/blog/post"))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\npost", got)

	got, err = r.ResolvePage(get("/blog/missing"))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n\r\n"+notFoundHTML, got)

	_, err = NewResolver(Dir(filepath.Join(root, "nope")), "index.html", "404.html")
	assert.ErrorIs(t, err, ErrNotFoundPage)
}
