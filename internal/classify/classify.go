// Package classify decides, per file, whether content is binary, which text
// encoding it uses, and whether it is large enough to require streaming.
// Classification is advisory and never aborts a scan: any I/O failure is
// swallowed and the file defaults to a plain utf-8 whole-file scan.
package classify

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"

	"github.com/leakhound/leakhound/internal/types"
)

const (
	// samplePrefix bounds how much of a file classification may read.
	samplePrefix = 8 << 10
	// StreamCutoff is the size above which files must be streamed.
	StreamCutoff = 10 << 20
	// nonASCIILimit is the non-ASCII byte ratio above which a sample is
	// treated as binary.
	nonASCIILimit = 0.30
)

// binaryExts short-circuits classification for extensions that are never
// scannable text.
var binaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".ico": true, ".bmp": true, ".tiff": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".tgz": true,
	".7z": true, ".rar": true, ".bz2": true, ".xz": true,
	".jar": true, ".class": true, ".exe": true, ".dll": true, ".so": true,
	".dylib": true, ".a": true, ".o": true, ".obj": true,
	".wasm": true, ".pyc": true, ".pyo": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".wav": true, ".flac": true, ".ogg": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".db": true, ".sqlite": true, ".bin": true, ".dat": true,
}

// sniffer is the generic charset detection capability consulted when BOM
// detection is inconclusive. Swappable in tests.
type sniffer interface {
	DetectBest([]byte) (*chardet.Result, error)
}

var defaultSniffer sniffer = chardet.NewTextDetector()

// Classify computes the FileDescriptor for one path. It stats the file,
// applies the extension fast path, then samples a bounded prefix for the
// binary and encoding heuristics described above.
func Classify(path string) types.FileDescriptor {
	fd := types.FileDescriptor{Path: path, Encoding: types.EncUTF8}

	info, err := os.Stat(path)
	if err != nil {
		return fd
	}
	fd.Size = info.Size()
	fd.ShouldStream = fd.Size > StreamCutoff

	if binaryExts[strings.ToLower(filepath.Ext(path))] {
		fd.Binary = true
		return fd
	}

	sample, err := readPrefix(path)
	if err != nil {
		fd.ShouldStream = false
		return fd
	}
	if len(sample) == 0 {
		return fd
	}

	// BOM signatures win over the binary heuristics: UTF-16 text is full
	// of NUL bytes the NUL check would otherwise flag.
	if enc, ok := detectBOM(sample); ok {
		fd.Encoding = enc
		return fd
	}

	if looksBinary(sample) {
		fd.Binary = true
		return fd
	}
	fd.Encoding = sniffEncoding(sample)
	return fd
}

func readPrefix(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, samplePrefix)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return buf[:n], nil
}

// looksBinary treats any NUL byte as binary, then falls back to the
// non-ASCII ratio heuristic.
func looksBinary(sample []byte) bool {
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	nonASCII := 0
	for _, b := range sample {
		if b > 0x7f {
			nonASCII++
		}
	}
	return float64(nonASCII)/float64(len(sample)) > nonASCIILimit
}

// detectBOM checks the 2-byte UTF-16 and 3-byte UTF-8 byte order marks.
func detectBOM(sample []byte) (types.Encoding, bool) {
	if len(sample) >= 3 && sample[0] == 0xef && sample[1] == 0xbb && sample[2] == 0xbf {
		return types.EncUTF8, true
	}
	if len(sample) >= 2 {
		if sample[0] == 0xff && sample[1] == 0xfe {
			return types.EncUTF16, true
		}
		if sample[0] == 0xfe && sample[1] == 0xff {
			return types.EncUTF16, true
		}
	}
	return "", false
}

// sniffEncoding delegates to the charset sniffer and normalizes its answer
// into the closed encoding set, falling back to a local heuristic when the
// sniffer fails or reports something outside the set.
func sniffEncoding(sample []byte) types.Encoding {
	if res, err := defaultSniffer.DetectBest(sample); err == nil && res != nil {
		name := strings.ToUpper(res.Charset)
		switch {
		case strings.Contains(name, "UTF-16"):
			return types.EncUTF16
		case strings.Contains(name, "UTF-8"):
			return types.EncUTF8
		case strings.Contains(name, "ISO-8859"), strings.Contains(name, "WINDOWS-125"):
			return types.EncLatin1
		case strings.Contains(name, "ASCII"):
			return types.EncASCII
		}
	}
	return heuristicEncoding(sample)
}

func heuristicEncoding(sample []byte) types.Encoding {
	nulls, highBit := 0, 0
	for _, b := range sample {
		switch {
		case b == 0:
			nulls++
		case b > 0x7f:
			highBit++
		}
	}
	n := float64(len(sample))
	if float64(nulls)/n > 0.1 {
		return types.EncUTF16
	}
	if float64(highBit)/n < 0.01 {
		return types.EncASCII
	}
	if utf8.Valid(sample) {
		return types.EncUTF8
	}
	return types.EncUTF8
}
