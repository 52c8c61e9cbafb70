// Package report renders world reports in the configured text encoding.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/l1jgo/clanworld/internal/world"
)

// Supported encodings.
const (
	UTF8 = "utf-8"
	Big5 = "big5"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter wraps w so report text (always UTF-8 internally) reaches it in
// the named encoding. Close flushes any buffered bytes but never closes w.
// Characters Big5 cannot represent are replaced rather than failing the
// write.
func NewWriter(enc string, w io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(enc) {
	case "", UTF8, "utf8":
		return nopCloser{w}, nil
	case Big5, "ms950":
		e := encoding.ReplaceUnsupported(traditionalchinese.Big5.NewEncoder())
		return transform.NewWriter(w, e), nil
	}
	return nil, fmt.Errorf("report encoding %q: unsupported", enc)
}

// Decode converts text produced by NewWriter back to UTF-8.
func Decode(enc string, raw []byte) (string, error) {
	switch strings.ToLower(enc) {
	case "", UTF8, "utf8":
		return string(raw), nil
	case Big5, "ms950":
		decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("decode big5: %w", err)
		}
		return string(decoded), nil
	}
	return "", fmt.Errorf("report encoding %q: unsupported", enc)
}

// Summary renders the closing world summary with grouped digits.
func Summary(s world.Stats) string {
	return fmt.Sprintf("%s clans, %s areas, %s groups, population %s",
		humanize.Comma(int64(s.Clans)),
		humanize.Comma(int64(s.Areas)),
		humanize.Comma(int64(s.Groups)),
		humanize.Comma(int64(s.Population)),
	)
}
