// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

func credentialFlags(a *app, name, usage string, args []string) (username, password string, err error) {
	fs := newFlagSet(name)
	user := fs.String("username", "", "account name")
	pass := fs.String("password", "", "password; read from stdin when omitted")
	if err := fs.Parse(args); err != nil {
		return "", "", errUsage(usage)
	}
	if *user == "" && fs.NArg() > 0 {
		*user = fs.Arg(0)
	}

	if *pass == "" && a.stdin != nil {
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && line == "" {
			return *user, "", nil
		}
		*pass = strings.TrimRight(line, "\r\n")
	}
	return *user, *pass, nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	username, password, err := credentialFlags(a, "login", usageLogin, args)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, a.client, username, password); err != nil {
		return err
	}
	a.printf("Sesión iniciada como %s.\n", a.session.Username())
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	username, password, err := credentialFlags(a, "register", usageRegister, args)
	if err != nil {
		return err
	}
	if err := a.session.Register(ctx, a.client, username, password); err != nil {
		return err
	}
	a.printf("Cuenta creada. Sesión iniciada como %s.\n", a.session.Username())
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if !a.session.Authenticated() {
		a.printf("No hay una sesión iniciada.\n")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("no se pudo cerrar la sesión: %w", err)
	}
	a.printf("Sesión cerrada.\n")
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	a.printf("%s\n", a.session.Username())
	a.printf("Secciones: %s\n", strings.Join(a.authz.Views(a.session), ", "))
	return nil
}
