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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/valpere/localize/internal/config"
	"github.com/valpere/localize/internal/store"
	"github.com/valpere/localize/internal/validator"
)

func setupLogging(w io.Writer, level string, debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// printError writes a fatal error. Argument and configuration errors carry
// their own guidance and are printed as-is.
func printError(w io.Writer, err error) {
	var argErr *validator.ArgError
	var envErr *config.MissingEnvError
	msg := err.Error()
	if !errors.As(err, &argErr) && !errors.As(err, &envErr) {
		msg = "Error: " + msg
	}
	color.New(color.FgRed).Fprintln(w, msg)
}

func historyPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openStore() (*store.Store, error) {
	path := historyPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func borderlessTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

// startSpinner shows a waiting indicator on w while a request is in flight
// and returns the function that removes it. Nothing is drawn when stdout is
// not a terminal.
func startSpinner(w io.Writer, suffix string) func() {
	// See charsets at
	// https://godoc.org/github.com/briandowns/spinner#pkg-variables
	s := spinner.New(spinner.CharSets[24], 200*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = "  " + suffix
	s.Start()
	return s.Stop
}
