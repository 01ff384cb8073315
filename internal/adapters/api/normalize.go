package api

import (
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// This file isolates every payload-vocabulary fallback in one place.
// The backend has shipped several shapes for the same concepts over
// time; each normalization function accepts all of them and emits the
// canonical domain form. Nothing outside this file inlines a synonym
// chain.

// NormalizeWeeklySeries turns either weekly payload shape into the
// canonical ordered series:
//   - the object list under "weeks_data" ({label, attempts, avg_score})
//   - the legacy parallel arrays: "weeks" labels plus "attempts" (or
//     "quizzes_done") counts and optional "avg_scores", merged
//     positionally
//
// An absent or malformed payload yields an empty series, never an
// error: a missing chart must not fail a dashboard load.
func NormalizeWeeklySeries(payload map[string]any) []progress.WeeklyPoint {
	series := []progress.WeeklyPoint{}
	if payload == nil {
		return series
	}

	if items, ok := payload["weeks_data"].([]any); ok && len(items) > 0 {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			series = append(series, progress.WeeklyPoint{
				Label:    asString(entry["label"]),
				Attempts: asCount(entry["attempts"]),
				AvgScore: asAvgScore(entry["avg_score"]),
			})
		}
		return series
	}

	labels, ok := payload["weeks"].([]any)
	if !ok {
		return series
	}
	counts, ok := payload["attempts"].([]any)
	if !ok {
		counts, _ = payload["quizzes_done"].([]any)
	}
	scores, _ := payload["avg_scores"].([]any)

	for i, label := range labels {
		point := progress.WeeklyPoint{Label: asString(label)}
		if i < len(counts) {
			point.Attempts = asCount(counts[i])
		}
		if i < len(scores) {
			point.AvgScore = asAvgScore(scores[i])
		}
		series = append(series, point)
	}
	return series
}

// Field-name synonyms for the stats extremes. The payload vocabulary
// is not fixed; absence of every synonym means "unknown", which
// renders distinctly from 0.
var (
	highestSynonyms = []string{"highest_score", "best_score", "max_score"}
	lowestSynonyms  = []string{"lowest_score", "worst_score", "min_score"}
)

// NormalizeStats maps the aggregate-stats payload into the canonical
// form, resolving field-name synonyms for each concept.
func NormalizeStats(payload map[string]any) progress.Stats {
	if payload == nil {
		return progress.Stats{}
	}
	return progress.Stats{
		TotalAttempts: asInt(first(payload, "total_attempts", "quizzes_done")),
		AvgScore:      asFloat(first(payload, "avg_score", "average_score")),
		Highest:       asScore(first(payload, highestSynonyms...)),
		Lowest:        asScore(first(payload, lowestSynonyms...)),
		StreakDays:    asInt(first(payload, "streak_days", "streak")),
		LastAttemptAt: asString(payload["last_attempt_at"]),
	}
}

// NormalizeMasteryReport flattens the mastery report into one record
// list. The server groups records into strong/medium/weak lists using
// its own (historically drifting) thresholds; those groupings are
// discarded here and buckets are recomputed by the aggregator. Records
// are accepted under either the "mastery" or "mastery_score" field.
func NormalizeMasteryReport(payload map[string]any) []progress.MasteryRecord {
	records := []progress.MasteryRecord{}
	if payload == nil {
		return records
	}
	for _, key := range []string{"strong_topics", "medium_topics", "weak_topics", "topics"} {
		items, ok := payload[key].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, progress.MasteryRecord{
				Subject: asString(entry["subject"]),
				Topic:   asString(entry["topic"]),
				Mastery: asFloat(first(entry, "mastery", "mastery_score")),
			})
		}
	}
	return records
}

// first returns the value under the first key present and non-nil.
func first(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat accepts the numeric types encoding/json produces.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asInt(v any) int {
	return int(asFloat(v))
}

// asCount reads an attempt count. A negative value is payload noise
// and collapses to zero like any other malformed field.
func asCount(v any) int {
	n := asInt(v)
	if n < 0 {
		return 0
	}
	return n
}

// asAvgScore reads a 0-100 average; values outside that range are
// malformed and collapse to zero.
func asAvgScore(v any) float64 {
	f := asFloat(v)
	if f < 0 || f > 100 {
		return 0
	}
	return f
}

// asScore distinguishes an absent extreme from an actual zero.
func asScore(v any) progress.Score {
	if v == nil {
		return progress.Score{}
	}
	switch v.(type) {
	case float64, int, int64:
		return progress.Score{Value: asFloat(v), Known: true}
	}
	return progress.Score{}
}
