package massconvert

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/hanatools/hanacli/internal/errs"
)

// Entry is one file inside a produced archive.
type Entry struct {
	Name string
	Body []byte
}

// BuildArchive assembles the entries into a ZIP archive in memory and
// returns the raw bytes. Archives stay small (one text file per table),
// so buffering the whole thing is fine.
func BuildArchive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindUnknown, "create archive entry "+e.Name, err)
		}
		if _, err := w.Write(e.Body); err != nil {
			return nil, errs.Wrap(errs.ErrKindUnknown, "write archive entry "+e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errs.Wrap(errs.ErrKindUnknown, "finalize archive", err)
	}
	return buf.Bytes(), nil
}
