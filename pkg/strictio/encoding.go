package strictio

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned by LookupEncoding for names it cannot resolve.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding selects how text is converted to and from bytes on disk.
// The zero value is Binary.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

var (
	Binary      = Encoding{name: "binary"}
	UTF8        = Encoding{name: "utf-8", enc: unicode.UTF8}
	UTF16LE     = Encoding{name: "utf-16le", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE     = Encoding{name: "utf-16be", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	Latin1      = Encoding{name: "iso-8859-1", enc: charmap.ISO8859_1}
	Windows1252 = Encoding{name: "windows-1252", enc: charmap.Windows1252}
)

// LookupEncoding resolves an encoding label such as "utf-8" or "shift_jis".
// Labels follow the WHATWG Encoding Standard, so "latin1" resolves to
// windows-1252; "binary" selects raw bytes.
func LookupEncoding(name string) (Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	switch label {
	case "", Binary.name, "raw":
		return Binary, nil
	case UTF16LE.name:
		return UTF16LE, nil
	case UTF16BE.name:
		return UTF16BE, nil
	case Latin1.name:
		return Latin1, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}

	return Encoding{name: canonical, enc: enc}, nil
}

// String returns the canonical label.
func (e Encoding) String() string {
	if e.enc == nil {
		return Binary.name
	}
	return e.name
}

// IsBinary reports whether no transcoding takes place.
func (e Encoding) IsBinary() bool {
	return e.enc == nil
}

func (e Encoding) decode(data []byte) (string, error) {
	if e.enc == nil {
		return string(data), nil
	}

	decoded, err := e.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", e, err)
	}
	return string(decoded), nil
}

func (e Encoding) encode(text string) ([]byte, error) {
	if e.enc == nil {
		return []byte(text), nil
	}

	encoded, err := e.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", e, err)
	}
	return encoded, nil
}
