// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger provides a BadgerDB-backed audit trace store.
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/policyrank/audit"
)

const (
	tracePrefix       = "trace:"
	traceSeqKey       = "traceseq"
	sequenceBandwidth = 100
)

// Store persists audit traces in BadgerDB, keyed by timestamp so
// iteration order is chronological.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
}

var _ audit.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens (or creates) a trace store at the given path. With
// inMemory set, no files are written; this mode is for tests and
// ephemeral runs.
func Open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	seq, err := db.GetSequence([]byte(traceSeqKey), sequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		seq:    seq,
		logger: slog.Default(),
	}, nil
}

// makeTraceKey builds a key ordered by timestamp, disambiguated by a
// sequence number so traces within the same microsecond do not collide.
func makeTraceKey(trace *audit.Trace, seq uint64) []byte {
	prefixBytes := []byte(tracePrefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// BigEndian so lexicographic key order is chronological
	binary.BigEndian.PutUint64(buf[offset:], uint64(trace.Timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// Append persists one trace.
func (s *Store) Append(ctx context.Context, trace *audit.Trace) error {
	if trace == nil {
		return audit.ErrTraceRequired
	}
	if s.db.IsClosed() {
		return audit.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(trace)
	if err != nil {
		return err
	}

	n, err := s.seq.Next()
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeTraceKey(trace, n), data)
	})
}

// Recent returns up to limit traces, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*audit.Trace, error) {
	if s.db.IsClosed() {
		return nil, audit.ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*audit.Trace{}, nil
	}

	traces := make([]*audit.Trace, 0, limit)
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tracePrefix)
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration needs a seek point past every trace key.
		seek := append([]byte(tracePrefix), 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

		for iter.Seek(seek); iter.Valid() && len(traces) < limit; iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				var trace audit.Trace
				if err := json.Unmarshal(val, &trace); err != nil {
					return err
				}
				traces = append(traces, &trace)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return traces, nil
}

// Close releases the sequence and closes the database.
func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	if err := s.seq.Release(); err != nil {
		s.logger.Warn("error releasing trace sequence", "err", err)
	}
	return s.db.Close()
}
