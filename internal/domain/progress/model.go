// Package progress holds the pure derivation layer that turns raw
// mastery, stats, and weekly-activity payloads into the categorised
// figures the dashboards display. Every function here is re-entrant and
// side-effect free; classification is always recomputed from the
// mastery value and never stored.
package progress

// Bucket is a fixed-threshold classification derived from mastery.
type Bucket int

const (
	BucketWeak Bucket = iota
	BucketMedium
	BucketStrong
)

// Classification thresholds. Boundary values belong to the higher bucket.
const (
	MediumThreshold = 45.0
	StrongThreshold = 70.0
)

// String returns the bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketWeak:
		return "weak"
	case BucketMedium:
		return "medium"
	case BucketStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Classify buckets a mastery value. The backend's own grouping (whose
// thresholds have drifted across versions) is deliberately ignored;
// the bucket is a pure function of the mastery score.
func Classify(mastery float64) Bucket {
	switch {
	case mastery >= StrongThreshold:
		return BucketStrong
	case mastery >= MediumThreshold:
		return BucketMedium
	default:
		return BucketWeak
	}
}

// MasteryRecord is one (subject, topic) pair the caller has attempted,
// with a 0–100 mastery score.
type MasteryRecord struct {
	Subject string
	Topic   string
	Mastery float64
}

// Bucket classifies the record.
// INVARIANT: the record is not mutated
func (r MasteryRecord) Bucket() Bucket {
	return Classify(r.Mastery)
}

// Average returns the mean mastery across records, 0 for an empty set.
func Average(records []MasteryRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Mastery
	}
	return sum / float64(len(records))
}

// Partition splits records into the three buckets without mutating or
// reordering the source slice. Relative order within each bucket
// follows the input.
func Partition(records []MasteryRecord) (weak, medium, strong []MasteryRecord) {
	for _, r := range records {
		switch r.Bucket() {
		case BucketStrong:
			strong = append(strong, r)
		case BucketMedium:
			medium = append(medium, r)
		default:
			weak = append(weak, r)
		}
	}
	return weak, medium, strong
}

// WeeklyPoint is one reporting week, ordered oldest-to-newest in a
// series. The series length is backend-controlled.
type WeeklyPoint struct {
	Label    string
	Attempts int
	AvgScore float64
}

// TotalAttempts sums attempts across a weekly series.
func TotalAttempts(series []WeeklyPoint) int {
	total := 0
	for _, p := range series {
		total += p.Attempts
	}
	return total
}

// ActiveWeeks counts weeks with at least one attempt.
func ActiveWeeks(series []WeeklyPoint) int {
	n := 0
	for _, p := range series {
		if p.Attempts > 0 {
			n++
		}
	}
	return n
}

// Score is a value that may be unknown. The backend omits extremes
// entirely for callers with no attempts, and "unknown" renders
// differently from an actual zero.
type Score struct {
	Value float64
	Known bool
}

// Stats is the normalised aggregate-stats payload for one caller.
type Stats struct {
	TotalAttempts int
	AvgScore      float64
	Highest       Score
	Lowest        Score
	StreakDays    int
	LastAttemptAt string
}
