// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/prediction"
)

func runPredict(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("predict")
	path := fs.String("file", "", "YAML file with the answers")
	report := fs.Bool("report", false, "print the full report")
	answers := make(map[string]*string, len(models.QuestionnaireFields))
	for _, field := range models.QuestionnaireFields {
		answers[field] = fs.String(field, "", "answer for "+field)
	}
	if err := fs.Parse(args); err != nil {
		return errUsage(usagePredict)
	}

	page := prediction.NewPage(a.client, a.reporter, prediction.WithClock(a.now))
	defer page.Unmount()

	if *path != "" {
		if err := loadAnswers(page, *path); err != nil {
			return err
		}
	}
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if v, ok := answers[f.Name]; ok && setErr == nil {
			setErr = page.Set(f.Name, *v)
		}
	})
	if setErr != nil {
		return setErr
	}

	result, err := page.Submit(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errors.New(strings.Join(prediction.ErrorMessages(err), "\n"))
	}

	if *report {
		a.printf("%s", prediction.Report(page.Form(), result, a.now()))
		return nil
	}
	a.printf("%s\n", result.Message)
	if result.HighRisk() {
		a.printf("\n%s\n", prediction.ReportHelpline)
	}
	return nil
}

// loadAnswers reads a YAML mapping of questionnaire keys to answers.
func loadAnswers(page *prediction.Page, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("no se pudo leer %s: %w", path, err)
	}
	for key, v := range k.All() {
		if err := page.Set(key, answerString(v)); err != nil {
			return fmt.Errorf("%s: campo desconocido %q", path, key)
		}
	}
	return nil
}

func answerString(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return models.Yes
		}
		return models.No
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
