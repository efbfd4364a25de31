// Package session drives one full replay: it pulls events off an ingest
// reader, applies them to a fresh pair of stores, and keeps count of
// what was accepted and what was rejected at which stage.
package session

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sbridger/reckon/internal/ingest"
	"github.com/sbridger/reckon/internal/ledger"
)

// Stats counts the outcome of every data row in a run. Rows is the
// number of data rows seen; header and blank rows are not counted.
type Stats struct {
	Rows           int
	Applied        int
	ParseRejected  int
	EngineRejected int

	// Reasons counts engine rejections by their reason code.
	Reasons map[string]int
}

// Rejected is the total number of rows that did not make it into the
// ledger, at either stage.
func (s *Stats) Rejected() int {
	return s.ParseRejected + s.EngineRejected
}

// Session replays one event stream into a fresh pair of stores. Each
// session carries its own run id so log entries from concurrent or
// repeated runs can be told apart.
type Session struct {
	Accounts *ledger.AccountStore[decimal.Decimal]
	Txs      *ledger.TransactionStore[decimal.Decimal]

	log   *zap.Logger
	runID string
	warn  func(error)
}

type Option func(*Session)

// WithLogger routes rejection entries to log instead of discarding them.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithWarnFunc calls fn once per rejected row, on top of logging. The
// commands use it to surface rejections on the terminal.
func WithWarnFunc(fn func(error)) Option {
	return func(s *Session) {
		s.warn = fn
	}
}

func New(opts ...Option) *Session {
	s := &Session{
		Accounts: ledger.NewAccountStore[decimal.Decimal](),
		Txs:      ledger.NewTransactionStore[decimal.Decimal](),
		log:      zap.NewNop(),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) RunID() string {
	return s.runID
}

// Run drains the reader, applying every event in input order. Rows
// rejected by the parser or the engine are counted, logged, and skipped;
// only a failure of the underlying input aborts the run.
func (s *Session) Run(r *ingest.Reader) (*Stats, error) {
	stats := &Stats{Reasons: make(map[string]int)}

	s.log.Info("run started", zap.String("run_id", s.runID))

	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			s.log.Info("run finished",
				zap.String("run_id", s.runID),
				zap.Int("rows", stats.Rows),
				zap.Int("applied", stats.Applied),
				zap.Int("parse_rejected", stats.ParseRejected),
				zap.Int("engine_rejected", stats.EngineRejected),
				zap.Int("accounts", s.Accounts.Len()),
			)
			return stats, nil
		}

		var re *ingest.RowError
		if errors.As(err, &re) {
			stats.Rows++
			stats.ParseRejected++
			s.log.Warn("row rejected",
				zap.String("run_id", s.runID),
				zap.String("stage", "parse"),
				zap.Int("line", re.Line),
				zap.Error(re.Err),
			)
			s.warnf(re)
			continue
		}
		if err != nil {
			return stats, err
		}

		stats.Rows++
		if err := ledger.Apply(ev, s.Accounts, s.Txs); err != nil {
			stats.EngineRejected++
			reason := ledger.Reason(err)
			if reason == "" {
				reason = "other"
			}
			stats.Reasons[reason]++
			s.log.Warn("event rejected",
				zap.String("run_id", s.runID),
				zap.String("stage", "engine"),
				zap.String("reason", reason),
				zap.String("kind", ev.Kind.String()),
				zap.Uint16("client", uint16(ev.Account)),
				zap.Uint32("tx", uint32(ev.ID)),
				zap.Error(err),
			)
			s.warnf(err)
			continue
		}
		stats.Applied++
	}
}

func (s *Session) warnf(err error) {
	if s.warn != nil {
		s.warn(err)
	}
}
