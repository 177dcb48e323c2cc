package compress

import (
	"mime"
	"path/filepath"
	"strings"

	"bitbucket.org/taruti/mimemagic"
	log "github.com/sirupsen/logrus"
)

var (
	// Compressable is a whitelist of formats that look binary but squeeze
	// well anyways; it beats the blacklist below.
	Compressable = []string{
		"image/bmp",
		"audio/x-wav",
	}

	// NotCompressable lists mime substrings of data that is already
	// compressed and not worth the cpu time.
	NotCompressable = []string{
		"application/ogg",
		"video",
		"audio",
		"image",
		"zip",
		"rar",
		"7z",
	}

	// TextFileExtensions are text extensions not covered by
	// mime.TypeByExtension.
	TextFileExtensions = []string{
		".go",
		".json",
		".yaml",
		".xml",
		".txt",
	}
)

const (
	// HeaderSizeThreshold is the number of bytes needed to enable
	// compression at all. Tiny files gain nothing from it.
	HeaderSizeThreshold = 2048
)

func guessMime(path string, buf []byte) string {
	s := mimemagic.Match("", buf)
	if s == "" {
		s = mime.TypeByExtension(filepath.Ext(path))
	}

	for _, extension := range TextFileExtensions {
		if extension == filepath.Ext(path) {
			return "text/generic"
		}
	}

	return s
}

func isCompressable(mimetype string) bool {
	for _, substr := range Compressable {
		if strings.Contains(mimetype, substr) {
			return true
		}
	}

	for _, substr := range NotCompressable {
		if strings.Contains(mimetype, substr) {
			return false
		}
	}

	return true
}

// GuessAlgorithm inspects the file name and the first few bytes of content
// and proposes a suitable algorithm. Already compressed media gets
// AlgoNone, text gets the stronger lz4, the rest snappy.
func GuessAlgorithm(path string, header []byte) (AlgorithmType, error) {
	if len(header) < HeaderSizeThreshold {
		return AlgoNone, nil
	}

	mime := guessMime(path, header)
	if !isCompressable(mime) {
		log.Debugf("guessed `%s` mime for `%s`; not compressing", mime, path)
		return AlgoNone, nil
	}

	if strings.HasPrefix(mime, "text/") {
		return AlgoLZ4, nil
	}

	return AlgoSnappy, nil
}
