package dictionary

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XDXF element and attribute names recognized by the scanner.
const (
	tagRoot        = "xdxf"
	tagArticle     = "ar"
	tagKey         = "k"
	tagTranslation = "dtrn"
	tagExample     = "ex"
	tagExampleMark = "exm"
	tagExampleOrig = "ex_orig"
	tagExampleTran = "ex_tran"
	attrLangFrom   = "lang_from"
	attrLangTo     = "lang_to"
)

// XDXFParser reads the subset of XDXF used by bilingual word lists.
type XDXFParser struct{}

type element struct {
	name  string
	attrs []string
	text  strings.Builder
}

func (e *element) hasAttrValue(value string) bool {
	for _, v := range e.attrs {
		if v == value {
			return true
		}
	}
	return false
}

type wordBuilder struct {
	identifier   string
	translations []string
}

type phraseBuilder struct {
	identifier  string
	translation string
	exampleFor  string
}

type xdxfScanner struct {
	entries  []Entry
	from     string
	to       string
	langSeen bool
	stack    []*element
	word     *wordBuilder
	phrase   *phraseBuilder
}

// Parse implements Parser. It scans tokens forward-only and never builds a tree.
func (XDXFParser) Parse(r io.Reader) (*Dictionary, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	s := &xdxfScanner{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, col := dec.InputPos()
			return nil, fmt.Errorf("malformed xdxf at %d:%d: %w", line, col, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			s.start(t)
		case xml.CharData:
			s.text(t)
		case xml.EndElement:
			s.end()
		}
	}
	if len(s.stack) > 0 {
		return nil, fmt.Errorf("malformed xdxf: unclosed <%s>", s.stack[len(s.stack)-1].name)
	}
	return New(s.entries, s.from, s.to), nil
}

func (s *xdxfScanner) start(t xml.StartElement) {
	name := t.Name.Local
	el := &element{name: name}
	for _, attr := range t.Attr {
		el.attrs = append(el.attrs, attr.Value)
	}

	switch name {
	case tagRoot:
		if !s.langSeen {
			s.langSeen = true
			s.from = attrValue(t.Attr, attrLangFrom)
			s.to = attrValue(t.Attr, attrLangTo)
		}
	case tagArticle:
		s.word = &wordBuilder{}
		s.phrase = nil
	case tagExampleMark:
		s.openPhrase()
	case tagExample:
		if el.hasAttrValue(tagExampleMark) && s.phrase == nil {
			s.openPhrase()
		}
	}
	s.stack = append(s.stack, el)
}

func (s *xdxfScanner) text(t xml.CharData) {
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1].text.Write(t)
}

func (s *xdxfScanner) end() {
	if len(s.stack) == 0 {
		return
	}
	el := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	if el.name == tagArticle {
		s.finishArticle()
		return
	}
	if s.word == nil {
		return
	}
	value := collapseSpace(el.text.String())
	switch el.name {
	case tagKey:
		s.word.identifier = value
		if s.phrase != nil {
			s.phrase.exampleFor = value
		}
	case tagTranslation:
		if value != "" {
			s.word.translations = append(s.word.translations, value)
		}
	case tagExample:
		if s.phrase != nil && el.hasAttrValue(tagExampleMark) && value != "" {
			s.phrase.identifier = value
		}
	case tagExampleOrig:
		if s.phrase != nil && value != "" {
			s.phrase.identifier = value
		}
	case tagExampleTran:
		if s.phrase != nil {
			s.phrase.translation = value
		}
	}
}

func (s *xdxfScanner) openPhrase() {
	s.phrase = &phraseBuilder{}
	if s.word != nil {
		s.phrase.exampleFor = s.word.identifier
	}
}

func (s *xdxfScanner) finishArticle() {
	if s.word != nil && s.word.identifier != "" {
		s.entries = append(s.entries, Word{
			Identifier:   s.word.identifier,
			Translations: s.word.translations,
		})
	}
	if s.phrase != nil && s.phrase.identifier != "" {
		exampleFor := s.phrase.exampleFor
		if exampleFor == "" && s.word != nil {
			exampleFor = s.word.identifier
		}
		s.entries = append(s.entries, Phrase{
			Identifier:  s.phrase.identifier,
			Translation: s.phrase.translation,
			ExampleFor:  exampleFor,
		})
	}
	s.word = nil
	s.phrase = nil
}

// collapseSpace joins whitespace runs, including line breaks from wrapped
// source text, into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return strings.TrimSpace(attr.Value)
		}
	}
	return ""
}
