package y7

import (
	"bytes"
	"encoding/xml"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText turns raw file bytes into XML text, tolerating the encoding
// quirks legacy writers produced: valid UTF-8 is used as-is; invalid
// UTF-8 is retried as UTF-16 (seen from yWriter for iOS, which sometimes
// writes a UTF-8 XML declaration over UTF-16 content); if both fail the
// caller falls back to feeding the raw bytes straight to the XML decoder.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return stripIllegalXMLChars(string(data)), nil
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err == nil && utf8.Valid(decoded) {
		return stripIllegalXMLChars(string(decoded)), nil
	}

	return "", err
}

// decodeDocument unmarshals raw Y7 file bytes into a document, trying the
// UTF-8/UTF-16 text decode first and falling back to handing the raw
// bytes to encoding/xml. The fallback accepts any declared charset label
// but does not transcode: the bytes are decoded as if they were UTF-8.
func decodeDocument(data []byte) (*document, error) {
	if text, err := decodeText(data); err == nil {
		var doc document
		if err := xml.Unmarshal([]byte(text), &doc); err == nil {
			return &doc, nil
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// stripIllegalXMLChars removes code points that are not legal in XML 1.0
// character data: control characters other than tab/newline/CR, and
// anything outside the well-formed surrogate-free ranges.
func stripIllegalXMLChars(s string) string {
	var b bytes.Buffer
	b.Grow(len(s))
	for _, r := range s {
		if isLegalXMLChar(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLegalXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
