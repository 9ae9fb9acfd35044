package qpcr

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune delimiting the
// values in the reader. qPCR exports arrive comma-, tab- and
// semicolon-separated depending on the instrument and locale, so we sniff
// rather than insist.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
