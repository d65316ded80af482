// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package authz decides which views the current user may open, using Casbin.

The embedded model is plain RBAC with two roles. A signed-out visitor is
"anonymous"; a signed-in user is "user" and inherits every anonymous view:

	anonymous: questionnaire, stats, forum, mailbox, quote
	user:      profile, quotes-admin, suggestions-admin

This is a front-end courtesy only. The remote API enforces its own rules
on every request.

Usage:

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
	    return err
	}
	gate := authz.NewService(enforcer)
	if err := gate.Require(authCtx, authz.ViewQuotesAdmin); err != nil {
	    return err
	}

A custom model or policy can be supplied through EnforcerConfig.ModelPath
and EnforcerConfig.PolicyPath.
*/
package authz
