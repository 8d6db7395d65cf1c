// Package stream scans one file in fixed-size chunks with a carried-over
// overlap window, bounding memory to O(chunk) regardless of file size while
// never losing or double-reporting matches that straddle a chunk boundary.
package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/leakhound/leakhound/internal/matcher"
	"github.com/leakhound/leakhound/internal/types"
)

const (
	// DefaultChunkSize is the read window per filesystem call.
	DefaultChunkSize = 64 << 10
	// DefaultOverlap is the tail carried into the next chunk's scan window.
	DefaultOverlap = 1 << 10
)

// Scanner streams files chunk by chunk. The zero value is not usable; call
// New.
type Scanner struct {
	ChunkSize int
	Overlap   int
}

// New returns a Scanner with the default chunk geometry.
func New() *Scanner {
	return &Scanner{ChunkSize: DefaultChunkSize, Overlap: DefaultOverlap}
}

// chunkState is the per-file cursor carried across chunks and discarded at
// EOF or on error.
type chunkState struct {
	logicalLine int
	overlap     string
	seen        map[string]struct{}
}

// ScanStream scans path chunk by chunk, decoding with the file's detected
// encoding. Open and read failures propagate to the caller; a mid-stream
// failure discards partial progress. The handle is closed on every exit
// path. An empty file yields zero issues.
func (s *Scanner) ScanStream(path string, enc types.Encoding, patterns []types.Pattern) ([]types.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream %s: %w", path, err)
	}
	defer f.Close()

	r := decodeReader(f, enc)
	st := chunkState{logicalLine: 1, seen: map[string]struct{}{}}
	buf := make([]byte, s.ChunkSize)

	var issues []types.Issue
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			issues = append(issues, s.scanChunk(path, string(buf[:n]), &st, patterns)...)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return issues, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read stream %s: %w", path, err)
		}
	}
}

// scanChunk prepends the carried overlap, matches every line of the window,
// and dedups against issues already emitted for overlap-covered lines.
func (s *Scanner) scanChunk(path, chunk string, st *chunkState, patterns []types.Pattern) []types.Issue {
	window := st.overlap + chunk
	lines := strings.Split(window, "\n")

	var out []types.Issue
	for i, line := range lines {
		lineNo := st.logicalLine + i
		line = strings.TrimSuffix(line, "\r")
		for _, is := range matcher.IssuesForLine(path, lineNo, line, patterns) {
			if _, dup := st.seen[is.ID]; dup {
				continue
			}
			st.seen[is.ID] = struct{}{}
			out = append(out, is)
		}
	}

	// The next overlap comes from the tail of the new chunk, not the
	// combined window.
	if len(chunk) > s.Overlap {
		st.overlap = chunk[len(chunk)-s.Overlap:]
	} else {
		st.overlap = chunk
	}

	// logicalLine must become the line number at which the next window
	// starts: every newline of this window advances it except the ones the
	// carried overlap will replay.
	st.logicalLine += strings.Count(window, "\n") - strings.Count(st.overlap, "\n")
	return out
}

// decodeReader wraps the file in a streaming decoder for the classified
// encoding. utf-8 and ascii pass through untouched.
func decodeReader(r io.Reader, enc types.Encoding) io.Reader {
	var dec *encoding.Decoder
	switch enc {
	case types.EncUTF16:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case types.EncLatin1:
		dec = charmap.ISO8859_1.NewDecoder()
	default:
		return r
	}
	return transform.NewReader(r, dec)
}
