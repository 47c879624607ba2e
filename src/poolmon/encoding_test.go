package poolmon

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"
)

func TestSniffEncodingTable(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want string
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'T', 'a', 'g'}, "utf-8"},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'T', 0x00}, "utf-16"},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0x00, 'T'}, "utf-16be"},
		{"utf32 le bom", []byte{0xFF, 0xFE, 0x00, 0x00, 'T', 0x00, 0x00, 0x00}, "utf-32le"},
		{"utf32 be bom", []byte{0x00, 0x00, 0xFE, 0xFF}, "utf-32be"},
		{"no bom", []byte("Tag,DateTime"), "utf-8"},
		{"empty", nil, "utf-8"},
	}
	for _, c := range cases {
		if got := sniffEncoding(c.head); got != c.want {
			t.Errorf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}

// The UTF-32LE mark begins with the UTF-16LE mark; the longer mark must
// win or UTF-32LE files get decoded as UTF-16 garbage.
func TestSniffEncodingPrefersLongerMark(t *testing.T) {
	head := []byte{0xFF, 0xFE, 0x00, 0x00}
	if got := sniffEncoding(head); got != "utf-32le" {
		t.Fatalf("expected utf-32le for 4-byte mark, got %q", got)
	}
}

func TestDetectEncodingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.csv")
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, []byte("Tag\nAbCd\n")...), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	enc, err := DetectEncoding(path)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if enc != "utf-8" {
		t.Fatalf("got %q want utf-8", enc)
	}
	// Files shorter than the 64-byte probe must still work.
	short := filepath.Join(dir, "short.csv")
	if err := os.WriteFile(short, []byte{0xFF, 0xFE}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	enc, err = DetectEncoding(short)
	if err != nil {
		t.Fatalf("detect short: %v", err)
	}
	if enc != "utf-16" {
		t.Fatalf("got %q want utf-16", enc)
	}
}

func utf16leBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 0, 2+len(units)*2)
	b = append(b, 0xFF, 0xFE)
	for _, u := range units {
		b = append(b, byte(u), byte(u>>8))
	}
	return b
}

func TestDecodeReaderUTF16(t *testing.T) {
	raw := utf16leBytes("Tag,Value\nAbCd,42\n")
	decoded, err := io.ReadAll(DecodeReader(strings.NewReader(string(raw)), "utf-16"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "Tag,Value\nAbCd,42\n" {
		t.Fatalf("unexpected decode result: %q", decoded)
	}
}

func TestDecodeReaderUTF8StripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Tag\n")...)
	decoded, err := io.ReadAll(DecodeReader(strings.NewReader(string(raw)), "utf-8"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "Tag\n" {
		t.Fatalf("expected BOM stripped, got %q", decoded)
	}
}
