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


package score

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"
)

// NeutralRecency is the score for candidates with no extractable date
// information. Missing dates are common in search snippets and are not an
// anomaly.
const NeutralRecency = 0.3

// dateFormats are tried in order against the free-form date field.
var dateFormats = []string{
	"2006年01月02日",
	"2006年1月2日",
	"2006-01-02",
	"2006/01/02",
	"2006年01月",
	"2006年1月",
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// RecencyScorer maps a candidate's publication date onto a decaying step
// function. The clock is injectable so tests are not time-dependent.
type RecencyScorer struct {
	now    func() time.Time
	logger *slog.Logger
}

// RecencyOption configures a RecencyScorer.
type RecencyOption func(*RecencyScorer)

// WithClock sets the time source. Default is time.Now.
func WithClock(now func() time.Time) RecencyOption {
	return func(s *RecencyScorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecencyLogger sets a custom logger.
// Default is slog.Default().
func WithRecencyLogger(logger *slog.Logger) RecencyOption {
	return func(s *RecencyScorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRecencyScorer creates a recency scorer.
func NewRecencyScorer(opts ...RecencyOption) *RecencyScorer {
	s := &RecencyScorer{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the freshness score in [0,1] from a free-form date
// string. Empty or unusable dates score NeutralRecency.
//
// The decay profile steps down at the 30/90/180/365/730-day breakpoints,
// mapping to 1.0/0.9/0.8/0.6/0.4/0.2.
func (s *RecencyScorer) Score(dateStr string) float64 {
	if dateStr == "" {
		return NeutralRecency
	}

	published, ok := s.parse(dateStr)
	if !ok {
		s.logger.Debug("unparseable candidate date", "date", dateStr)
		return NeutralRecency
	}

	days := int(s.now().Sub(published).Hours() / 24)
	switch {
	case days <= 30:
		return 1.0
	case days <= 90:
		return 0.9
	case days <= 180:
		return 0.8
	case days <= 365:
		return 0.6
	case days <= 730:
		return 0.4
	default:
		return 0.2
	}
}

// parse tries the accepted formats in order, then falls back to a bare
// 4-digit year anchored at mid-year (June 15).
func (s *RecencyScorer) parse(dateStr string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, true
		}
	}

	if m := yearPattern.FindString(dateStr); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil && year >= 1900 && year <= 2200 {
			return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}
