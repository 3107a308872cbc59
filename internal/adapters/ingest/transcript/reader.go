package transcript

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/lineparse"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/logger"
)

const (
	maxScanTokenSize = 32 * 1024 * 1024
	initialScanBuf   = 1024 * 1024
	sampleRawMax     = 256 // max bytes of a raw line to log for the sample
)

var gzipMagic = []byte{0x1f, 0x8b}

// Stats describes what a Reader consumed so far
type Stats struct {
	lineparse.Stats
	Bytes      int64 `json:"bytes"` // uncompressed, newlines included
	Compressed bool  `json:"compressed"`
}

// Reader streams assembled messages from a transcript. Not safe for concurrent use
type Reader struct {
	r       io.ReadCloser
	gz      *gzip.Reader
	sc      *bufio.Scanner
	asm     *lineparse.Assembler
	err     error
	bytes   int64
	sampled bool // logs exactly one sample raw line per stream
}

// NewReader wraps r, transparently decompressing gzip input. The Reader owns r
func NewReader(r io.ReadCloser) (*Reader, error) {
	br := bufio.NewReader(r)
	rd := &Reader{r: r, asm: lineparse.NewAssembler()}

	var src io.Reader = br
	if head, err := br.Peek(len(gzipMagic)); err == nil && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			if cerr := r.Close(); cerr != nil {
				return nil, perr.Wrap(cerr, perr.ErrorCodeUnavailable, "transcript: close after gzip failure")
			}
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "transcript: bad gzip header")
		}
		rd.gz = gz
		src = gz
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, initialScanBuf), maxScanTokenSize)
	rd.sc = sc
	return rd, nil
}

// Next returns the next complete message; io.EOF when done
func (rd *Reader) Next() (chat.Message, error) {
	if rd.err != nil {
		return chat.Message{}, rd.err
	}
	for rd.sc.Scan() {
		line := rd.sc.Text()
		rd.bytes += int64(len(line) + 1)

		if !rd.sampled && line != "" {
			rd.sampled = true
			logger.Named("transcript").Debug().
				Int("line_bytes", len(line)).
				Str("sample_raw", truncateUTF8(line, sampleRawMax)).
				Msg("transcript: sample raw line")
		}

		if m, ok := rd.asm.Feed(line); ok {
			return m, nil
		}
	}
	if err := rd.sc.Err(); err != nil {
		rd.err = err
		if _, coded := perr.As(err); !coded {
			rd.err = perr.Wrap(err, perr.ErrorCodeUnavailable, "transcript: read")
		}
		return chat.Message{}, rd.err
	}
	if m, ok := rd.asm.Flush(); ok {
		return m, nil
	}
	rd.err = io.EOF
	return chat.Message{}, io.EOF
}

// Stats returns the counters accumulated so far
func (rd *Reader) Stats() Stats {
	return Stats{Stats: rd.asm.Stats(), Bytes: rd.bytes, Compressed: rd.gz != nil}
}

// Diagnostics returns the timestamp fallbacks recorded so far
func (rd *Reader) Diagnostics() []lineparse.Diagnostic { return rd.asm.Diagnostics() }

// Close closes the decompressor and the underlying reader
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		if err := rd.gz.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			first = err
		}
	}
	if rd.r != nil {
		if err := rd.r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// truncateUTF8 cuts s to at most max bytes on a rune boundary, marking the cut
func truncateUTF8(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	i := max
	for i > 0 && (s[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return s[:i] + "..."
}
