// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

// Command bienestar is the terminal client of the student wellbeing
// service. It answers the risk questionnaire, reads the statistics
// dashboard, and takes part in the forum and the suggestions mailbox.
// Signed-in users can also curate the quotes of the day.
//
// # Configuration
//
// Configuration is loaded with koanf (highest priority wins):
//   - Environment variables, including a .env file in the working directory
//   - config.yaml, or the file named by CONFIG_PATH
//   - Built-in defaults
//
// The API address comes from BIENESTAR_API_URL, then VITE_API_URL, then
// http://localhost:5000. The session is kept in a badger directory; set
// SESSION_ENCRYPTION_KEY to encrypt the stored token.
//
// # Usage
//
//	bienestar quote
//	bienestar stats [-json]
//	bienestar predict -file answers.yaml [-report]
//	bienestar forum list [-order recientes|populares]
//	bienestar forum post "texto"
//	bienestar login -username ana
//	bienestar quotes add "Un paso a la vez"
//	bienestar serve
//
// Errors are printed to stderr in Spanish, as the service shows them, and
// the exit status is 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || isHelp(args[0]) {
		printUsage(stdout)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Comando desconocido: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}

	a, err := newApp(ctx, stdin, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer a.Close()

	if err := a.authorize(cmd.view); err != nil {
		fmt.Fprintln(stderr, errorMessage(err, ""))
		return 1
	}
	if err := cmd.run(ctx, a, args[1:]); err != nil {
		fmt.Fprintln(stderr, errorMessage(err, cmd.fallback))
		return 1
	}
	return 0
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}
