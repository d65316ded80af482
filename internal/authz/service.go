// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package authz

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/bienestar/internal/logging"
)

// Roles known to the embedded policy.
const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
)

// Views gated by the policy.
const (
	ViewQuestionnaire    = "questionnaire"
	ViewStats            = "stats"
	ViewForum            = "forum"
	ViewMailbox          = "mailbox"
	ViewQuote            = "quote"
	ViewProfile          = "profile"
	ViewQuotesAdmin      = "quotes-admin"
	ViewSuggestionsAdmin = "suggestions-admin"
)

const actionView = "view"

// ErrNotAuthorized is returned when a view is denied.
var ErrNotAuthorized = errors.New("not authorized")

// Identity is the signed-in state a decision is made on. auth.Context
// implements it.
type Identity interface {
	Authenticated() bool
}

// Service answers which views the current identity may open.
type Service struct {
	enforcer *Enforcer
}

// NewService wraps an enforcer.
func NewService(enforcer *Enforcer) *Service {
	return &Service{enforcer: enforcer}
}

// RoleOf maps an identity to its policy role. A nil identity is anonymous.
func RoleOf(id Identity) string {
	if id != nil && id.Authenticated() {
		return RoleUser
	}
	return RoleAnonymous
}

// CanView reports whether id may open view. Unknown views are denied.
func (s *Service) CanView(id Identity, view string) bool {
	role := RoleOf(id)
	start := time.Now()
	allowed, err := s.enforcer.Enforce(role, view, actionView)
	if err != nil {
		logging.Warn().Err(err).Str("view", view).Msg("View authorization check failed")
		RecordViewDecision(role, view, false, time.Since(start))
		return false
	}
	RecordViewDecision(role, view, allowed, time.Since(start))
	return allowed
}

// Require is CanView as an error wrapping ErrNotAuthorized.
func (s *Service) Require(id Identity, view string) error {
	if s.CanView(id, view) {
		return nil
	}
	return fmt.Errorf("%w: %s requires signing in", ErrNotAuthorized, view)
}

// Views lists, sorted, every view in the policy that id may open.
func (s *Service) Views(id Identity) []string {
	var views []string
	for _, rule := range s.enforcer.GetPolicy() {
		if len(rule) < 3 || rule[2] != actionView || slices.Contains(views, rule[1]) {
			continue
		}
		if s.CanView(id, rule[1]) {
			views = append(views, rule[1])
		}
	}
	slices.Sort(views)
	return views
}
