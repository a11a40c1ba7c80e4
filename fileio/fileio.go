// Package fileio is the byte-stream provider behind the loader: it opens
// local files and http/https/ftp URLs, transparently decompressing .gz and
// .bz2 names. Format predicates and parsers read through it so that
// compressed and remote files identify the same as plain local ones.
package fileio

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/jlaffaye/ftp"
)

// httpClient is shared by all remote opens to reuse TCP connections.
var httpClient = &http.Client{}

// IsRemote reports whether path is a URL this package retrieves over the
// network rather than opening locally.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "ftp://")
}

// Open yields a readable stream for path. path may be a local file or an
// http://, https://, or ftp:// URL; names ending in .gz or .bz2 are
// decompressed on the fly. Closing the returned stream closes every layer.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	var err error

	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		src, err = openHTTP(ctx, path)
	case strings.HasPrefix(path, "ftp://"):
		src, err = openFTP(ctx, path)
	default:
		src, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, zerr := gzip.NewReader(src)
		if zerr != nil {
			src.Close()
			return nil, fmt.Errorf("failed to open gzip stream for %s: %w", path, zerr)
		}
		return &layered{Reader: zr, closers: []io.Closer{zr, src}}, nil
	case strings.HasSuffix(path, ".bz2"):
		return &layered{Reader: bzip2.NewReader(src), closers: []io.Closer{src}}, nil
	}
	return src, nil
}

// layered is a reader whose Close tears down every layer of the stream,
// outermost first.
type layered struct {
	io.Reader
	closers []io.Closer
}

func (l *layered) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openHTTP(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("remote fetch of %s failed: %s", rawURL, resp.Status)
	}
	return resp.Body, nil
}

func openFTP(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "21")
	}
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx))
	if err != nil {
		return nil, err
	}

	user, pass := "anonymous", "anonymous"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := conn.Login(user, pass); err != nil {
		conn.Quit()
		return nil, err
	}

	resp, err := conn.Retr(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		conn.Quit()
		return nil, err
	}
	return &ftpStream{resp: resp, conn: conn}, nil
}

// ftpStream couples the data connection's lifetime to the control
// connection's.
type ftpStream struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (s *ftpStream) Read(p []byte) (int, error) {
	return s.resp.Read(p)
}

func (s *ftpStream) Close() error {
	err := s.resp.Close()
	if qerr := s.conn.Quit(); err == nil {
		err = qerr
	}
	return err
}
