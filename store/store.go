// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persists extraction output in an embedded Badger
// database, keyed by corpus position, the way storage.DB persists
// collocation frequency tables in the teacher repo. Here the value is
// not a frequency record but a sentence's linearized predicate-argument
// output, so a caller can re-run a corpus once and look up any
// sentence's extraction result afterward without re-parsing.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// Record is one stored sentence's extraction result: the flat-string
// form plus the names of the rules that fired. It does not hold the
// Parse, so the pretty-printed form cannot be rebuilt from it alone.
type Record struct {
	SentenceID int      `json:"sentenceId"`
	Flat       string   `json:"flat"`
	Rules      []string `json:"rules"`
}

// DB wraps a Badger database of Records keyed by sentence ID.
type DB struct {
	bdb *badger.DB
}

// Open opens (creating if absent) a Badger database at path, tuned the
// same way storage.openDB tunes its collocation database: read-optimized
// settings sized for a large, mostly-append-then-read corpus run.
func Open(path string) (*DB, error) {
	opts := badger.DefaultOptions(path).
		WithValueLogFileSize(1 << 30).
		WithBlockCacheSize(512 << 20).
		WithIndexCacheSize(256 << 20).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithLogger(&ZerologWrapper{})

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}
	return &DB{bdb: bdb}, nil
}

// Close closes the database. It is a no-op on a nil or already-closed
// DB, mirroring storage.DB.Close in the teacher repo.
func (db *DB) Close() error {
	if db != nil && db.bdb != nil {
		return db.bdb.Close()
	}
	return nil
}

// Clear drops every stored record. It is a no-op on a nil DB.
func (db *DB) Clear() error {
	if db == nil || db.bdb == nil {
		return nil
	}
	return db.bdb.DropAll()
}

func sentKey(id int) []byte {
	return []byte(fmt.Sprintf("sent:%012d", id))
}

// Put stores rec under its SentenceID.
func (db *DB) Put(rec Record) error {
	return db.bdb.Update(func(txn *badger.Txn) error {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(sentKey(rec.SentenceID), encoded)
	})
}

// Get retrieves the Record stored for sentenceID, or (Record{}, false,
// nil) if none was stored.
func (db *DB) Get(sentenceID int) (Record, bool, error) {
	var rec Record
	found := false
	err := db.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sentKey(sentenceID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("store: failed to read sentence %d: %w", sentenceID, err)
	}
	return rec, found, nil
}

// ZerologWrapper adapts zerolog's global logger to badger.Logger, the
// way the teacher repo wires Badger's internal logging through the same
// zerolog/log package the rest of the application uses. The teacher's
// own ZerologWrapper type is referenced but was not present in the
// retrieval pack, so this is a from-scratch reconstruction of the
// obvious adapter shape rather than an adaptation of existing source.
type ZerologWrapper struct{}

func (w *ZerologWrapper) Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

func (w *ZerologWrapper) Warningf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func (w *ZerologWrapper) Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func (w *ZerologWrapper) Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
