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
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bienestar/internal/authz"
	"github.com/tomtom215/bienestar/internal/feedback"
	"github.com/tomtom215/bienestar/internal/forum"
	"github.com/tomtom215/bienestar/internal/models"
	"github.com/tomtom215/bienestar/internal/quotes"
	"github.com/tomtom215/bienestar/internal/stats"
)

// command is one subcommand. view names the authz view that gates it;
// fallback is printed for remote failures without a usable reason.
type command struct {
	usage    string
	view     string
	fallback string
	run      func(ctx context.Context, a *app, args []string) error
}

const (
	usageQuote       = "quote"
	usageStats       = "stats [-json]"
	usagePredict     = "predict [-file respuestas.yaml] [-<campo> valor ...] [-report]"
	usageForum       = "forum list|post|react|replies|reply ..."
	usageSuggest     = "suggest [-category Bug|Recomendación|Queja] texto"
	usageSuggestions = "suggestions"
	usageQuotes      = "quotes list|add|delete|feature ..."
	usageLogin       = "login -username nombre [-password clave]"
	usageRegister    = "register -username nombre [-password clave]"
	usageLogout      = "logout"
	usageWhoami      = "whoami"
	usageServe       = "serve"
)

var commands = map[string]command{
	"quote":       {usage: usageQuote, view: authz.ViewQuote, fallback: quotes.MsgLoadFailed, run: runQuote},
	"stats":       {usage: usageStats, view: authz.ViewStats, fallback: "No se pudieron cargar las estadísticas.", run: runStats},
	"predict":     {usage: usagePredict, view: authz.ViewQuestionnaire, run: runPredict},
	"forum":       {usage: usageForum, view: authz.ViewForum, fallback: "No se pudo completar la acción en el foro.", run: runForum},
	"suggest":     {usage: usageSuggest, view: authz.ViewMailbox, fallback: feedback.MsgSendFailed, run: runSuggest},
	"suggestions": {usage: usageSuggestions, view: authz.ViewSuggestionsAdmin, fallback: feedback.MsgLoadFailed, run: runSuggestions},
	"quotes":      {usage: usageQuotes, view: authz.ViewQuotesAdmin, fallback: quotes.MsgLoadFailed, run: runQuotes},
	"login":       {usage: usageLogin, fallback: "No se pudo iniciar sesión.", run: runLogin},
	"register":    {usage: usageRegister, fallback: "No se pudo crear la cuenta.", run: runRegister},
	"logout":      {usage: usageLogout, run: runLogout},
	"whoami":      {usage: usageWhoami, view: authz.ViewProfile, run: runWhoami},
	"serve":       {usage: usageServe, view: authz.ViewStats, run: runServe},
}

var commandOrder = []string{
	"quote", "stats", "predict", "forum", "suggest",
	"login", "register", "logout", "whoami",
	"quotes", "suggestions", "serve",
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Uso: bienestar <comando> [argumentos]")
	fmt.Fprintln(w)
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  bienestar %s\n", commands[name].usage)
	}
}

// errUsage reports a malformed command line.
type errUsage string

func (e errUsage) Error() string { return "Uso: bienestar " + string(e) }

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runQuote(ctx context.Context, a *app, args []string) error {
	q, err := quotes.Today(ctx, a.client)
	if err != nil {
		return err
	}
	if q == nil {
		a.printf("%s\n", quotes.MsgNoQuote)
		return nil
	}
	a.printf("“%s”\n", q.Contenido)
	return nil
}

func runStats(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("stats")
	asJSON := fs.Bool("json", false, "print the dashboard as JSON")
	if err := fs.Parse(args); err != nil {
		return errUsage(usageStats)
	}

	agg, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}
	d := stats.Build(agg)

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	printDashboard(a.out, d)
	return nil
}

func printDashboard(w io.Writer, d *stats.Dashboard) {
	if d.Empty {
		fmt.Fprintln(w, stats.EmptyMessage)
		return
	}
	fmt.Fprintf(w, "Cuestionarios registrados: %d\n", d.Total)
	fmt.Fprintf(w, "Riesgo alto: %.1f%%\n", d.HighRiskPct)
	fmt.Fprintf(w, "Antecedentes familiares: %.1f%%\n", d.FamilyHistoryYesPct)
	fmt.Fprintf(w, "Pensamientos suicidas: %.1f%%\n", d.SuicidalThoughtsYesPct)

	printSeries(w, "Género", d.Gender, "%")
	printSeries(w, "Riesgo", d.Risk, "%")
	printSeries(w, "Horas de sueño", d.Sleep, "%")
	printSeries(w, "Alimentación", d.Diet, "%")
	if len(d.Devices) > 0 {
		printSeries(w, "Dispositivos", d.Devices, "%")
	}

	if len(d.Averages) > 0 {
		fmt.Fprintln(w, "\nPromedios")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, avg := range d.Averages {
			fmt.Fprintf(tw, "  %s\t%s\n", avg.Label, avg.Display)
		}
		_ = tw.Flush()
	}
}

func printSeries(w io.Writer, title string, series []stats.Point, unit string) {
	if len(series) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range series {
		fmt.Fprintf(tw, "  %s\t%.1f%s\n", p.Label, p.Value, unit)
	}
	_ = tw.Flush()
}

func runSuggest(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("suggest")
	category := fs.String("category", models.CategoryBug, "Bug, Recomendación or Queja")
	if err := fs.Parse(args); err != nil {
		return errUsage(usageSuggest)
	}

	box := feedback.NewMailbox(a.client, &a.cfg.Sync)
	defer box.Close()

	if _, err := box.Submit(ctx, *category, strings.Join(fs.Args(), " ")); err != nil {
		if errors.Is(err, feedback.ErrEmptyText) {
			return errors.New(feedback.MsgEmptyText)
		}
		return err
	}
	a.printf("%s\n", feedback.MsgSent)
	return nil
}

func runSuggestions(ctx context.Context, a *app, args []string) error {
	box := feedback.NewMailbox(a.client, &a.cfg.Sync)
	defer box.Close()

	if err := box.Load(ctx); err != nil {
		return err
	}
	list := box.Suggestions()
	if len(list) == 0 {
		a.printf("No hay sugerencias.\n")
		return nil
	}
	now := a.now()
	for i := range list {
		s := list[i]
		a.printf("[%s] %s · %s\n  %s\n", s.ID, feedback.CategoryOf(s), forum.RelativeTime(s.Timestamp, now), s.Text())
	}
	return nil
}

func runQuotes(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage(usageQuotes)
	}

	admin := quotes.NewAdmin(a.client, &a.cfg.Sync)
	defer admin.Close()

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		if err := admin.Load(ctx); err != nil {
			return err
		}
		list := admin.Quotes()
		if len(list) == 0 {
			a.printf("%s\n", quotes.MsgNoQuote)
		}
		for _, q := range list {
			a.printf("[%s] %s\n", q.ID, q.Contenido)
		}
		return nil

	case "add":
		q, err := admin.Add(ctx, strings.Join(rest, " "))
		if err != nil {
			return withFallback(err, quotes.MsgAddFailed)
		}
		a.printf("Frase guardada [%s].\n", q.ID)
		return nil

	case "delete":
		if len(rest) != 1 {
			return errUsage("quotes delete <id>")
		}
		if err := admin.Delete(ctx, rest[0]); err != nil {
			return withFallback(err, quotes.MsgDeleteFailed)
		}
		a.printf("Frase eliminada.\n")
		return nil

	case "feature":
		if len(rest) != 1 {
			return errUsage("quotes feature <id>")
		}
		if err := admin.Load(ctx); err != nil {
			return err
		}
		if err := admin.Feature(ctx, rest[0]); err != nil {
			return withFallback(err, quotes.MsgFeatureFailed)
		}
		a.printf("Frase del día actualizada.\n")
		return nil

	default:
		return errUsage(usageQuotes)
	}
}

// withFallback replaces a remote failure without a usable reason by the
// message of the action that failed.
func withFallback(err error, fallback string) error {
	if msg := errorMessage(err, fallback); msg != err.Error() {
		return errors.New(msg)
	}
	return err
}
