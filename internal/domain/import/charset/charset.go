// Package charset decodes raw CSV bytes of unknown encoding into UTF-8 text.
// Japanese bank and card-issuer exports carry no encoding declaration, so the
// encoding is sniffed from byte patterns; Shift_JIS is the forced fallback.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Detection below this confidence is treated as inconclusive and the
// Shift_JIS fallback applies.
const minDetectConfidence = 60

// legacy codecs tried when the input is not valid UTF-8, in fallback order.
var legacyCodecs = []struct {
	name string
	enc  encoding.Encoding
}{
	{"Shift_JIS", japanese.ShiftJIS},
	{"EUC-JP", japanese.EUCJP},
	{"ISO-2022-JP", japanese.ISO2022JP},
}

// Decode converts raw file bytes to a UTF-8 string. It is total: undecodable
// input degrades to replacement runes rather than an error, so a bad guess
// surfaces downstream as row-level validation skips instead of a failed import.
func Decode(data []byte) string {
	data = stripUTF8BOM(data)
	if len(data) == 0 {
		return ""
	}

	if utf8.Valid(data) {
		return string(data)
	}

	if name, ok := detectLegacy(data); ok {
		if text, ok := tryDecode(data, codecByName(name)); ok {
			return text
		}
	}

	for _, c := range legacyCodecs {
		if text, ok := tryDecode(data, c.enc); ok {
			return text
		}
	}

	// Forced lossy fallback: Shift_JIS with invalid sequences replaced.
	out, _ := japanese.ShiftJIS.NewDecoder().Bytes(data)
	return string(bytes.ToValidUTF8(out, []byte("�")))
}

// detectLegacy runs the byte-pattern detector and returns a codec name only
// for a confident Japanese charset result.
func detectLegacy(data []byte) (string, bool) {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "", false
	}
	if result.Confidence < minDetectConfidence {
		return "", false
	}
	switch result.Charset {
	case "Shift_JIS", "EUC-JP", "ISO-2022-JP":
		return result.Charset, true
	}
	return "", false
}

func codecByName(name string) encoding.Encoding {
	for _, c := range legacyCodecs {
		if c.name == name {
			return c.enc
		}
	}
	return japanese.ShiftJIS
}

// tryDecode reports a clean decode: no transform error and no replacement
// runes in the output.
func tryDecode(data []byte, enc encoding.Encoding) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	text := string(out)
	if !utf8.ValidString(text) || strings.ContainsRune(text, '�') {
		return "", false
	}
	return text, true
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
