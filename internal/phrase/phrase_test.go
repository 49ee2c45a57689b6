package phrase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_KeepsFileOrder(t *testing.T) {
	res, err := Read(strings.NewReader("Hello\nWorld\nGood morning\n"), Plain)
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello", "World", "Good morning"}, res.Texts())
	assert.Empty(t, res.Skipped)
}

func TestRead_NoTrailingNewline(t *testing.T) {
	res, err := Read(strings.NewReader("one\ntwo"), Plain)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, res.Texts())
}

func TestRead_CRLF(t *testing.T) {
	res, err := Read(strings.NewReader("one\r\ntwo\r\n"), Plain)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, res.Texts())
}

func TestRead_SkipsBlankLines(t *testing.T) {
	res, err := Read(strings.NewReader("one\n\n   \ntwo\n"), Plain)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, res.Texts())
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 2, res.Skipped[0].Line)
	assert.Equal(t, 3, res.Skipped[1].Line)
	assert.True(t, errors.Is(res.Skipped[0].Err, ErrEmptyLine))
}

func TestRead_SkipsInvalidUTF8(t *testing.T) {
	res, err := Read(strings.NewReader("good\nbad \xff\xfe\nalso good\n"), Plain)
	require.NoError(t, err)

	assert.Equal(t, []string{"good", "also good"}, res.Texts())
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Line)
	assert.True(t, errors.Is(res.Skipped[0].Err, ErrInvalidUTF8))
}

func TestRead_TransformErrorDoesNotAbort(t *testing.T) {
	reject := errors.New("rejected")
	transform := func(line string) (string, error) {
		if strings.HasPrefix(line, "#") {
			return "", reject
		}
		return strings.ToUpper(line), nil
	}

	res, err := Read(strings.NewReader("a\n# comment\nb\n"), transform)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, res.Texts())
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "# comment", res.Skipped[0].Text)
	assert.ErrorIs(t, res.Skipped[0].Err, reject)
}

func TestRead_NilTransformIsPlain(t *testing.T) {
	res, err := Read(strings.NewReader("x\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, res.Texts())
}

func TestRead_EmptyInput(t *testing.T) {
	res, err := Read(strings.NewReader(""), Plain)
	require.NoError(t, err)
	assert.NotNil(t, res.Phrases)
	assert.Empty(t, res.Phrases)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestRead_ReaderError(t *testing.T) {
	_, err := Read(failingReader{}, Plain)
	assert.Error(t, err)
}

func TestPlain_NormalizesNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	got, err := Plain("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", got)
}

func TestMarkdown(t *testing.T) {
	got, err := Markdown("**Save** your _changes_ & [continue](https://example.com)")
	require.NoError(t, err)
	assert.Equal(t, "Save your changes & continue", got)
}

func TestMarkdown_EmptyAfterRender(t *testing.T) {
	_, err := Markdown("<br>")
	assert.ErrorIs(t, err, ErrEmptyLine)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello\nWorld\n"), 0644))

	res, err := ReadFile(path, Plain)
	require.NoError(t, err)
	assert.Equal(t, []Phrase{{Phrase: "Hello"}, {Phrase: "World"}}, res.Phrases)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), Plain)
	assert.Error(t, err)
}
