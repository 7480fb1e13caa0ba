package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrDecode is returned when uploaded bytes are not text in the configured charset.
var ErrDecode = errors.New("cannot decode file content")

// Charset names with special handling. Any other WHATWG label
// (e.g. "koi8-r", "utf-16le") is resolved through the encoding index.
const (
	CharsetUTF8 = "utf-8"
	CharsetAuto = "auto"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw upload bytes to text. "auto" accepts valid UTF-8
// and otherwise reads the bytes as Windows-1251.
func Decode(raw []byte, charset string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	switch name {
	case "", CharsetUTF8, "utf8":
		return decodeUTF8(raw)
	case CharsetAuto:
		if s, err := decodeUTF8(raw); err == nil {
			return s, nil
		}
		return decodeWith(charmap.Windows1251, raw)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: unknown charset %q", ErrDecode, charset)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == CharsetUTF8 {
		return decodeUTF8(raw)
	}
	return decodeWith(enc, raw)
}

func decodeUTF8(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrDecode, invalidOffset(raw))
	}
	return string(raw), nil
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
