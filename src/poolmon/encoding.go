package poolmon

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// bomSignature pairs a byte-order mark with the encoding name it
// identifies. Longer marks are checked before shorter ones that share a
// prefix (the UTF-32LE mark starts with the UTF-16LE mark), so the table
// below is grouped by mark length, descending; within a length class the
// original priority order is kept.
type bomSignature struct {
	mark []byte
	name string
}

var bomSignatures = []bomSignature{
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, "utf-32be"},
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, "utf-32le"},
	{[]byte{0xEF, 0xBB, 0xBF}, "utf-8"},
	{[]byte{0xFF, 0xFE}, "utf-16"},
	{[]byte{0xFE, 0xFF}, "utf-16be"},
	{[]byte{0xFF, 0xFE}, "utf-16le"},
}

// sniffEncoding matches the leading bytes against the BOM table and
// returns the encoding name, defaulting to utf-8 when no mark matches.
func sniffEncoding(head []byte) string {
	for _, sig := range bomSignatures {
		if bytes.HasPrefix(head, sig.mark) {
			return sig.name
		}
	}
	return "utf-8"
}

// DetectEncoding reads up to 64 leading bytes of the file and guesses
// its text encoding from the byte-order mark. Files without a mark are
// treated as utf-8; that is a silent fallback, not an error.
func DetectEncoding(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 64)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return sniffEncoding(head[:n]), nil
}

// decoderFor maps an encoding name from the BOM table to its decoder.
// Every decoder consumes the mark itself so the CSV layer sees clean
// text. The plain "utf-16" name means BOM-determined endianness.
func decoderFor(name string) *encoding.Decoder {
	switch name {
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	default:
		// utf-8, with or without a mark
		return unicode.UTF8BOM.NewDecoder()
	}
}

// DecodeReader wraps r with the decoder for the named encoding, yielding
// a UTF-8 stream with the byte-order mark stripped.
func DecodeReader(r io.Reader, encodingName string) io.Reader {
	return transform.NewReader(r, decoderFor(encodingName))
}
