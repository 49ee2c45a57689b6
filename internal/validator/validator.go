// Package validator checks the command-line options before anything touches
// the network or the file system.
package validator

import (
	"fmt"
	"os"
	"strings"
)

type Operation string

const (
	PushTranslation     Operation = "push_translation"
	DownloadTranslation Operation = "download_translation"
	GetPhrases          Operation = "get_phrases"
)

// Operations lists the accepted --operation values in menu order.
var Operations = []Operation{PushTranslation, DownloadTranslation, GetPhrases}

// DownloadFormats lists the accepted --downloadFormat values.
var DownloadFormats = []string{"xliff", "json", "yaml", "csv", "po", "strings", "xml", "resx"}

const (
	operationMsg = "Operation (argument: --operation value) name must be provided. Valid values are: { %s }"
	fileMsg      = "File to read must be provided. Generally it is the file at the root of your directory.(argument: --phraseFile value)"
	formatMsg    = "Download (argument: --downloadFormat value) format must be provided. Valid values are: { %s }"
	languageMsg  = "Language (argument: --language value) must be provided. Valid values are: { ko, en }"
	stateMsg     = "In order to get phrases you must specify the state against which query should be made(argument: --state value). Valid values are: {'pending', 'active', 'all'}"
)

// Options holds the raw flag values.
type Options struct {
	Operation      string
	PhraseFile     string
	DownloadFormat string
	Language       string
	State          string
}

// ArgError is a missing or invalid flag. Message is the guidance shown to
// the user.
type ArgError struct {
	Flag    string
	Message string
}

func (e *ArgError) Error() string {
	return e.Message
}

// Validate returns the selected operation, or an *ArgError describing the
// first problem found.
func Validate(opts Options) (Operation, error) {
	op, ok := ParseOperation(opts.Operation)
	if !ok {
		return "", &ArgError{Flag: "operation", Message: fmt.Sprintf(operationMsg, joinOperations())}
	}

	switch op {
	case PushTranslation:
		if err := checkPhraseFile(opts.PhraseFile); err != nil {
			return "", err
		}
	case DownloadTranslation:
		if !IsDownloadFormat(opts.DownloadFormat) {
			return "", &ArgError{Flag: "downloadFormat", Message: fmt.Sprintf(formatMsg, strings.Join(DownloadFormats, ", "))}
		}
		if opts.Language == "" {
			return "", &ArgError{Flag: "language", Message: languageMsg}
		}
	case GetPhrases:
		if opts.State == "" {
			return "", &ArgError{Flag: "state", Message: stateMsg}
		}
	}

	return op, nil
}

func ParseOperation(s string) (Operation, bool) {
	for _, op := range Operations {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// IsDownloadFormat reports whether format is one of DownloadFormats.
// The comparison is case-sensitive.
func IsDownloadFormat(format string) bool {
	for _, f := range DownloadFormats {
		if f == format {
			return true
		}
	}
	return false
}

func checkPhraseFile(path string) error {
	if path == "" {
		return &ArgError{Flag: "phraseFile", Message: fileMsg}
	}
	f, err := os.Open(path)
	if err != nil {
		return &ArgError{Flag: "phraseFile", Message: fmt.Sprintf("can't open '%s': %v", path, err)}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &ArgError{Flag: "phraseFile", Message: fmt.Sprintf("can't open '%s': %v", path, err)}
	}
	if info.IsDir() {
		return &ArgError{Flag: "phraseFile", Message: fmt.Sprintf("can't open '%s': is a directory", path)}
	}
	return nil
}

func joinOperations() string {
	names := make([]string, len(Operations))
	for i, op := range Operations {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
