package validator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePhraseFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phrases.txt")
	if err := os.WriteFile(path, []byte("Hello\nWorld\n"), 0644); err != nil {
		t.Fatalf("failed to write phrase file: %v", err)
	}
	return path
}

func argError(t *testing.T, err error) *ArgError {
	t.Helper()
	var argErr *ArgError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected *ArgError, got %v", err)
	}
	return argErr
}

func TestValidate_ValidOperations(t *testing.T) {
	file := writePhraseFile(t)

	tests := []struct {
		name string
		opts Options
		want Operation
	}{
		{
			name: "push",
			opts: Options{Operation: "push_translation", PhraseFile: file},
			want: PushTranslation,
		},
		{
			name: "download",
			opts: Options{Operation: "download_translation", DownloadFormat: "json", Language: "en"},
			want: DownloadTranslation,
		},
		{
			name: "get phrases",
			opts: Options{Operation: "get_phrases", State: "active"},
			want: GetPhrases,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Validate(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if op != tt.want {
				t.Errorf("expected %s, got %s", tt.want, op)
			}
		})
	}
}

func TestValidate_InvalidOperation(t *testing.T) {
	for _, name := range []string{"", "push", "PUSH_TRANSLATION", "get-phrases", "stats", " get_phrases"} {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(Options{Operation: name, State: "all"})
			argErr := argError(t, err)
			if argErr.Flag != "operation" {
				t.Errorf("expected operation flag, got %q", argErr.Flag)
			}
			want := "Operation (argument: --operation value) name must be provided. Valid values are: { push_translation, download_translation, get_phrases }"
			if argErr.Error() != want {
				t.Errorf("unexpected message:\n got: %s\nwant: %s", argErr.Error(), want)
			}
		})
	}
}

func TestValidate_AllDownloadFormats(t *testing.T) {
	for _, format := range DownloadFormats {
		op, err := Validate(Options{Operation: "download_translation", DownloadFormat: format, Language: "ko"})
		if err != nil {
			t.Errorf("format %s: unexpected error: %v", format, err)
		}
		if op != DownloadTranslation {
			t.Errorf("format %s: expected download_translation, got %s", format, op)
		}
	}
}

func TestValidate_InvalidDownloadFormat(t *testing.T) {
	for _, format := range []string{"", "pdf", "JSON", "yml", "txt"} {
		_, err := Validate(Options{Operation: "download_translation", DownloadFormat: format, Language: "en"})
		argErr := argError(t, err)
		if argErr.Flag != "downloadFormat" {
			t.Errorf("format %q: expected downloadFormat flag, got %q", format, argErr.Flag)
		}
		if !strings.Contains(argErr.Error(), "{ xliff, json, yaml, csv, po, strings, xml, resx }") {
			t.Errorf("format %q: message does not list formats: %s", format, argErr.Error())
		}
	}
}

func TestValidate_MissingLanguage(t *testing.T) {
	_, err := Validate(Options{Operation: "download_translation", DownloadFormat: "po"})
	argErr := argError(t, err)
	if argErr.Flag != "language" {
		t.Errorf("expected language flag, got %q", argErr.Flag)
	}
}

func TestValidate_MissingState(t *testing.T) {
	_, err := Validate(Options{Operation: "get_phrases"})
	argErr := argError(t, err)
	if argErr.Flag != "state" {
		t.Errorf("expected state flag, got %q", argErr.Flag)
	}
}

func TestValidate_MissingPhraseFile(t *testing.T) {
	_, err := Validate(Options{Operation: "push_translation"})
	argErr := argError(t, err)
	if argErr.Flag != "phraseFile" {
		t.Errorf("expected phraseFile flag, got %q", argErr.Flag)
	}
}

func TestValidate_UnreadablePhraseFile(t *testing.T) {
	_, err := Validate(Options{Operation: "push_translation", PhraseFile: "/nonexistent/phrases.txt"})
	argErr := argError(t, err)
	if argErr.Flag != "phraseFile" {
		t.Errorf("expected phraseFile flag, got %q", argErr.Flag)
	}
}

func TestValidate_PhraseFileIsDirectory(t *testing.T) {
	_, err := Validate(Options{Operation: "push_translation", PhraseFile: t.TempDir()})
	argErr := argError(t, err)
	if !strings.Contains(argErr.Error(), "is a directory") {
		t.Errorf("unexpected message: %s", argErr.Error())
	}
}

func TestValidate_IgnoresFlagsOfOtherOperations(t *testing.T) {
	// A bad format does not matter when no download is requested.
	_, err := Validate(Options{Operation: "get_phrases", State: "pending", DownloadFormat: "pdf"})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
