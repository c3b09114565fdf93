package bcf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// container owns the path-to-blob mapping of a BCF archive. A container
// is either read mode (backed by a zip reader, blobs fetched on demand)
// or write mode (blobs accumulated in memory until flush). Entry order
// is preserved both ways: archive order on read, insertion order on
// write.
type container struct {
	order []string
	files map[string]*zip.File // read mode
	blobs map[string][]byte    // write mode
}

// openContainer wraps b, which must be a complete zip archive.
func openContainer(b []byte, limits Limits) (*container, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	c := &container{files: make(map[string]*zip.File, len(zr.File))}
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if _, dup := c.files[zf.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrArchive, zf.Name)
		}
		c.files[zf.Name] = zf
		c.order = append(c.order, zf.Name)
	}
	if len(c.order) > limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrLimitExceeded, len(c.order))
	}
	return c, nil
}

// newContainer returns an empty write-mode container.
func newContainer() *container {
	return &container{blobs: make(map[string][]byte)}
}

// has reports whether an entry exists at path.
func (c *container) has(path string) bool {
	if c.files != nil {
		_, ok := c.files[path]
		return ok
	}
	_, ok := c.blobs[path]
	return ok
}

// get returns the blob at path, decompressing at most max bytes.
// Fetching the same path repeatedly yields the same bytes.
func (c *container) get(path string, max uint64) ([]byte, error) {
	if c.files == nil {
		b, ok := c.blobs[path]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingEntry, path)
		}
		return b, nil
	}
	zf, ok := c.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingEntry, path)
	}
	if zf.UncompressedSize64 > max {
		return nil, fmt.Errorf("%w: entry %q is %d bytes", ErrLimitExceeded, path, zf.UncompressedSize64)
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrArchive, path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, int64(max)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrArchive, path, err)
	}
	if uint64(len(b)) > max {
		return nil, fmt.Errorf("%w: entry %q", ErrLimitExceeded, path)
	}
	return b, nil
}

// put inserts a blob at path in a write-mode container.
func (c *container) put(path string, blob []byte) error {
	if _, dup := c.blobs[path]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicatePath, path)
	}
	c.blobs[path] = blob
	c.order = append(c.order, path)
	return nil
}

// entries returns the entry paths in container order. The slice is a
// copy; callers may range over it any number of times.
func (c *container) entries() []string {
	return append([]string(nil), c.order...)
}

// flush writes all entries of a write-mode container to w as a zip
// archive, in insertion order.
func (c *container) flush(w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	for _, name := range c.order {
		f, err := zw.Create(name)
		if err != nil {
			_ = zw.Close()
			return err
		}
		if _, err := f.Write(c.blobs[name]); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}
