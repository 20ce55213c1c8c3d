// Package resume turns an uploaded résumé into plain text.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxSize bounds how much of an upload is read.
const MaxSize = 10 << 20

var ErrUnreadable = errors.New("resume: cannot read document")

// ReadText reads a PDF from r and returns its text content. Text extraction
// failures, including panics inside the PDF parser, are reported as
// ErrUnreadable.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(b) > MaxSize {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrUnreadable, MaxSize)
	}
	return Text(b)
}

func Text(b []byte) (text string, err error) {
	if len(b) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnreadable)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(b, "\x00\t\r\n "), []byte("%PDF-")) {
		return "", fmt.Errorf("%w: not a PDF", ErrUnreadable)
	}

	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	pr, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	plain, err := pr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return sb.String(), nil
}
