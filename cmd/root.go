/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/localize/internal/config"
	"github.com/valpere/localize/internal/phrase"
	"github.com/valpere/localize/internal/validator"
)

var version = "0.1.0"

// cfg is loaded from the environment before any argument is parsed.
var cfg config.Config

var (
	operation      string
	phraseFile     string
	downloadFormat string
	language       string
	state          string

	useMarkdown bool
	detectLang  bool
	outputDir   string

	dbPath    string
	noHistory bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "localize",
	Short: "Command-line client for the Localize translation API",
	Long: `A command-line client for the Localize (localizejs.com) v2.0 project API.

Operations:
  - push_translation      Push the lines of a phrase file for translation
  - download_translation  Download a translated resource file
  - get_phrases           List the project's phrases in a given state

Required environment:
  AUTHORIZATION   value of the Authorization header
  PROJECT_KEY     Localize project key

Examples:
  localize --operation push_translation --phraseFile phrases.txt
  localize --operation download_translation --downloadFormat json --language ko
  localize --operation get_phrases --state pending`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transform := phrase.Plain
		if useMarkdown {
			transform = phrase.Markdown
		}

		r := newRunner(cmd.OutOrStdout(), cmd.ErrOrStderr())
		defer r.close()

		r.transform = transform
		r.detect = detectLang
		r.outputDir = outputDir

		return r.run(cmd.Context(), validator.Options{
			Operation:      operation,
			PhraseFile:     phraseFile,
			DownloadFormat: downloadFormat,
			Language:       language,
			State:          state,
		})
	},
}

// Execute loads the configuration, then parses the command line and runs
// the selected command. It exits the process with status 1 on any failure.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	loaded, err := config.Load()
	if err != nil {
		printError(stderr, err)
		return 1
	}
	cfg = loaded

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.Flags().StringVar(&operation, "operation", "", "Task to be performed: push_translation, download_translation, get_phrases")
	rootCmd.Flags().StringVar(&phraseFile, "phraseFile", "", "File containing one phrase per line (push_translation)")
	rootCmd.Flags().StringVar(&downloadFormat, "downloadFormat", "", "Type of file to download: xliff, json, yaml, csv, po, strings, xml, resx")
	rootCmd.Flags().StringVar(&language, "language", "", "Language of the file to download (download_translation)")
	rootCmd.Flags().StringVar(&state, "state", "", "State of the phrases to list, e.g. pending, active, all (get_phrases)")

	rootCmd.Flags().BoolVar(&useMarkdown, "markdown", false, "Treat phrase lines as markdown and push their plain text")
	rootCmd.Flags().BoolVar(&detectLang, "detect", false, "Detect and report the language of the phrase file before pushing")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory to write downloaded resources to")

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", fmt.Sprintf("Operation history database (default $LOCALIZE_DB or %s)", config.DefaultDBPath))
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record operations in the history database")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
