// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package auth

import (
	"fmt"

	"github.com/tomtom215/bienestar/internal/config"
	"github.com/tomtom215/bienestar/internal/logging"
)

// NewStore returns the store described by cfg: a BadgerStore when a store
// path is configured, otherwise a MemoryStore.
func NewStore(cfg *config.SessionConfig) (Store, error) {
	if cfg == nil || cfg.StorePath == "" {
		logging.Debug().Msg("Using in-memory session store")
		return NewMemoryStore(), nil
	}

	enc, err := NewTokenEncryptor(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("session encryption: %w", err)
	}
	store, err := OpenBadgerStore(cfg.StorePath, enc)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Str("path", cfg.StorePath).
		Bool("encrypted", enc.IsEnabled()).
		Msg("Using badger session store")
	return store, nil
}
