package dictionary

import "io"

// TypoParser is reserved for the flat ".typo" format. Its grammar is not
// defined yet, so parsing always fails with ErrUnsupportedFormat.
type TypoParser struct{}

// Parse implements Parser.
func (TypoParser) Parse(io.Reader) (*Dictionary, error) {
	return nil, ErrUnsupportedFormat
}
