package services

import (
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFileNameLen = 255

var extRe = regexp.MustCompile(`^[a-z0-9]{1,16}$`)

// genStorageKey: "<user-uuid>/<unix-millis>.<ext>"
func genStorageKey(userID uuid.UUID, fileName, mimeType string, now time.Time) string {
	return fmt.Sprintf("%s/%d.%s", userID.String(), now.UnixMilli(), fileExt(fileName, mimeType))
}

// fileExt prefers the name's extension, then the MIME type, then "bin".
func fileExt(fileName, mimeType string) string {
	if ext := asciiExt(path.Ext(displayFileName(fileName))); ext != "" {
		return ext
	}
	if mimeType != "" {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			if ext := asciiExt(exts[0]); ext != "" {
				return ext
			}
		}
	}
	return "bin"
}

func asciiExt(ext string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	ext, _, _ = transform.String(t, ext)
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if !extRe.MatchString(ext) {
		return ""
	}
	return ext
}

// displayFileName keeps the user's file name readable: path parts and
// control characters are dropped, the rest is NFC normalized.
func displayFileName(original string) string {
	s := strings.ReplaceAll(strings.TrimSpace(original), "\\", "/")
	s = path.Base(s)
	if s == "." || s == ".." || s == "/" || s == "" {
		return "file"
	}

	s = strings.Map(func(r rune) rune {
		if r == utf8.RuneError || unicode.IsControl(r) {
			return -1
		}
		return r
	}, norm.NFC.String(s))

	for utf8.RuneCountInString(s) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	if s == "" {
		return "file"
	}

	return s
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
