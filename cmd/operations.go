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
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	xlanguage "golang.org/x/text/language"

	"github.com/valpere/localize/internal"
	"github.com/valpere/localize/internal/detector"
	"github.com/valpere/localize/internal/localize"
	"github.com/valpere/localize/internal/phrase"
	"github.com/valpere/localize/internal/store"
	"github.com/valpere/localize/internal/validator"
)

// runner carries one invocation of an --operation.
type runner struct {
	client *localize.Client
	db     *store.Store
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	transform phrase.Transform
	detect    bool
	outputDir string
}

func newRunner(out, errOut io.Writer) *runner {
	return &runner{
		client:    localize.NewClient(cfg),
		out:       out,
		errOut:    errOut,
		now:       time.Now,
		transform: phrase.Plain,
		outputDir: ".",
	}
}

// openHistory attaches the history store. A store that cannot be opened
// only disables recording.
func (r *runner) openHistory() {
	if noHistory || r.db != nil {
		return
	}
	db, err := openStore()
	if err != nil {
		log.Warn().Err(err).Msg("operation history disabled")
		return
	}
	r.db = db
}

func (r *runner) close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *runner) run(ctx context.Context, opts validator.Options) error {
	op, err := validator.Validate(opts)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.openHistory()

	switch op {
	case validator.PushTranslation:
		return r.push(ctx, opts.PhraseFile)
	case validator.DownloadTranslation:
		return r.download(ctx, opts.DownloadFormat, opts.Language)
	case validator.GetPhrases:
		return r.getPhrases(ctx, opts.State)
	}
	return fmt.Errorf("unsupported operation: %s", op)
}

func (r *runner) push(ctx context.Context, path string) error {
	params := map[string]string{"phraseFile": path}

	read, err := phrase.ReadFile(path, r.transform)
	if err != nil {
		r.record(ctx, validator.PushTranslation, params, err, "")
		return fmt.Errorf("failed to read phrase file: %w", err)
	}

	for _, s := range read.Skipped {
		log.Warn().Int("line", s.Line).Err(s.Err).Msg("skipping phrase line")
	}
	if n := len(read.Skipped); n > 0 {
		fmt.Fprintf(r.errOut, "Skipped %d of %d lines\n", n, n+len(read.Phrases))
	}

	if r.detect {
		if iso, ok := detector.New().DetectPhrases(read.Texts()); ok {
			fmt.Fprintf(r.errOut, "Detected source language: %s\n", iso)
		} else {
			fmt.Fprintln(r.errOut, "Detected source language: unknown")
		}
	}

	params["phrases"] = strconv.Itoa(len(read.Phrases))
	log.Debug().Int("phrases", len(read.Phrases)).Msg("pushing phrases")

	stop := startSpinner(r.errOut, "Pushing phrases...")
	res, err := r.client.PushPhrases(ctx, read.Phrases)
	stop()
	if err != nil {
		r.record(ctx, validator.PushTranslation, params, err, "")
		return fmt.Errorf("push failed: %w", err)
	}

	r.record(ctx, validator.PushTranslation, params, nil, res.Status)
	fmt.Fprintln(r.out, res.Status)
	return nil
}

func (r *runner) download(ctx context.Context, format, lang string) error {
	if _, err := xlanguage.Parse(lang); err != nil {
		log.Warn().Str("language", lang).Msg("language is not a well-formed BCP 47 tag")
	}

	params := map[string]string{"downloadFormat": format, "language": lang}

	pp := &progressPrinter{w: r.errOut}
	path, err := r.client.Download(ctx, localize.DownloadRequest{
		Format:   format,
		Language: lang,
		Dir:      r.outputDir,
		Now:      r.now(),
	}, pp.update)
	pp.done()
	if err != nil {
		r.record(ctx, validator.DownloadTranslation, params, err, "")
		return fmt.Errorf("download failed: %w", err)
	}

	r.record(ctx, validator.DownloadTranslation, params, nil, path)
	fmt.Fprintln(r.out, path)
	return nil
}

// getPhrases writes the fetched phrases to out, one per line, in server order.
func (r *runner) getPhrases(ctx context.Context, state string) error {
	params := map[string]string{"state": state}

	stop := startSpinner(r.errOut, "Fetching phrases...")
	phrases, err := r.client.GetPhrases(ctx, state)
	stop()
	if err != nil {
		r.record(ctx, validator.GetPhrases, params, err, "")
		return fmt.Errorf("failed to get phrases: %w", err)
	}

	id := r.record(ctx, validator.GetPhrases, params, nil, fmt.Sprintf("%d phrases", len(phrases)))
	if id != "" {
		if err := r.db.SavePhrases(ctx, id, phrases); err != nil {
			log.Warn().Err(err).Msg("failed to store fetched phrases")
		}
	}

	for _, p := range phrases {
		fmt.Fprintln(r.out, p)
	}
	return nil
}

// record stores the outcome of op in the history and returns the record ID,
// or "" when nothing was stored.
func (r *runner) record(ctx context.Context, op validator.Operation, params map[string]string, opErr error, detail string) string {
	if r.db == nil {
		return ""
	}

	rec := internal.OperationRecord{
		ID:         uuid.New().String(),
		Operation:  string(op),
		ProjectKey: cfg.ProjectKey,
		Params:     params,
		Status:     internal.StatusOK,
		Detail:     detail,
		Timestamp:  r.now(),
	}
	if opErr != nil {
		rec.Status = internal.StatusError
		rec.Detail = opErr.Error()
	}

	if err := r.db.SaveOperation(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("failed to record operation")
		return ""
	}
	return rec.ID
}

// progressPrinter renders download progress the classic way: a header line,
// then a byte counter rewritten in place with a carriage return.
type progressPrinter struct {
	w      io.Writer
	chunks int
}

func (pp *progressPrinter) update(p localize.Progress) {
	if p.Downloaded == 0 {
		size := "None"
		if p.Total >= 0 {
			size = strconv.FormatInt(p.Total, 10)
		}
		fmt.Fprintf(pp.w, "Downloading: %s Bytes: %s\n", p.URL, size)
		return
	}

	pp.chunks++
	status := fmt.Sprintf("%16d", p.Downloaded)
	if pct, ok := p.Percent(); ok {
		status += fmt.Sprintf("   [%6.2f%%]", pct)
	}
	fmt.Fprint(pp.w, status+"\r")
}

// done ends the counter line.
func (pp *progressPrinter) done() {
	if pp.chunks > 0 {
		fmt.Fprintln(pp.w)
	}
}
