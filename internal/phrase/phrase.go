// Package phrase reads local phrase files into the list pushed for
// translation. Every line goes through a Transform; lines the transform
// rejects are reported in ReadResult.Skipped instead of aborting the read.
package phrase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/valpere/localize/internal/markdown"
)

var (
	ErrEmptyLine   = errors.New("empty line")
	ErrInvalidUTF8 = errors.New("line is not valid UTF-8")
)

// Phrase is one unit of source text.
type Phrase struct {
	Phrase string `json:"phrase"`
}

// Transform turns a raw line (without its line terminator) into phrase text.
type Transform func(line string) (string, error)

// Skipped is a line that did not become a phrase. Line is 1-based.
type Skipped struct {
	Line int
	Text string
	Err  error
}

type ReadResult struct {
	Phrases []Phrase
	Skipped []Skipped
}

// Texts returns the phrase strings in order.
func (r *ReadResult) Texts() []string {
	out := make([]string, len(r.Phrases))
	for i, p := range r.Phrases {
		out[i] = p.Phrase
	}
	return out
}

// Plain accepts any valid UTF-8 line and returns it NFC-normalised.
func Plain(line string) (string, error) {
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return norm.NFC.String(line), nil
}

// Markdown renders a markdown line down to its plain text.
func Markdown(line string) (string, error) {
	text, err := Plain(line)
	if err != nil {
		return "", err
	}
	text = markdown.ToPlainText([]byte(text))
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyLine
	}
	return text, nil
}

// Read consumes r line by line. Blank lines are skipped with ErrEmptyLine.
// Only a read failure of r itself is returned as an error.
func Read(r io.Reader, transform Transform) (*ReadResult, error) {
	if transform == nil {
		transform = Plain
	}

	res := &ReadResult{Phrases: make([]Phrase, 0)}
	br := bufio.NewReader(r)
	lineNo := 0

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			if strings.TrimSpace(line) == "" {
				res.Skipped = append(res.Skipped, Skipped{Line: lineNo, Text: line, Err: ErrEmptyLine})
			} else if text, terr := transform(line); terr != nil {
				res.Skipped = append(res.Skipped, Skipped{Line: lineNo, Text: line, Err: terr})
			} else {
				res.Phrases = append(res.Phrases, Phrase{Phrase: text})
			}
		}
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("failed to read line %d: %w", lineNo+1, err)
		}
	}
}

func ReadFile(path string, transform Transform) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrase file: %w", err)
	}
	defer f.Close()

	return Read(f, transform)
}
