// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

var sessionKey = []byte("session:current")

// BadgerStore persists the session in a local BadgerDB so the user stays
// signed in across runs. The token is encrypted when an encryptor is set.
type BadgerStore struct {
	db  *badger.DB
	enc *TokenEncryptor
}

// OpenBadgerStore opens (or creates) the database at path. enc may be nil.
func OpenBadgerStore(path string, enc *TokenEncryptor) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for session: %w", err)
	}
	return &BadgerStore{db: db, enc: enc}, nil
}

// Load reads and decrypts the stored session.
func (s *BadgerStore) Load(_ context.Context) (*Session, error) {
	var session Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	token, err := s.enc.Decrypt(session.Token)
	if err != nil {
		return nil, fmt.Errorf("decrypt token: %w", err)
	}
	session.Token = token
	return &session, nil
}

// Save encrypts and writes session, replacing any previous one.
func (s *BadgerStore) Save(_ context.Context, session *Session) error {
	stored := *session
	token, err := s.enc.Encrypt(session.Token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}
	stored.Token = token

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey, data)
	})
}

// Clear deletes the stored session.
func (s *BadgerStore) Clear(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
