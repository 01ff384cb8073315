package progress_test

import (
	"testing"

	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// TestClassify pins the bucket thresholds, including the inclusive
// boundaries at 45 and 70.
func TestClassify(t *testing.T) {
	tests := []struct {
		mastery float64
		want    progress.Bucket
	}{
		{0, progress.BucketWeak},
		{44.9, progress.BucketWeak},
		{45, progress.BucketMedium},
		{60, progress.BucketMedium},
		{69.99, progress.BucketMedium},
		{70, progress.BucketStrong},
		{100, progress.BucketStrong},
	}

	for _, tt := range tests {
		if got := progress.Classify(tt.mastery); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.mastery, got, tt.want)
		}
	}
}

// TestAverage covers the mean and the empty-set rule.
func TestAverage(t *testing.T) {
	t.Run("empty set yields zero", func(t *testing.T) {
		if got := progress.Average(nil); got != 0 {
			t.Errorf("Average(nil) = %v, want 0", got)
		}
	})

	t.Run("mean of records", func(t *testing.T) {
		records := []progress.MasteryRecord{
			{Subject: "Math", Topic: "Algebra", Mastery: 40},
			{Subject: "Math", Topic: "Geometry", Mastery: 60},
			{Subject: "CS", Topic: "Arrays", Mastery: 80},
		}
		if got := progress.Average(records); got != 60 {
			t.Errorf("Average() = %v, want 60", got)
		}
	})
}

// TestPartition checks bucket membership and that the source is untouched.
func TestPartition(t *testing.T) {
	records := []progress.MasteryRecord{
		{Topic: "Pointers", Mastery: 20},
		{Topic: "Slices", Mastery: 45},
		{Topic: "Maps", Mastery: 70},
		{Topic: "Channels", Mastery: 69},
		{Topic: "Interfaces", Mastery: 95},
	}

	weak, medium, strong := progress.Partition(records)

	if len(weak) != 1 || weak[0].Topic != "Pointers" {
		t.Errorf("weak = %v", weak)
	}
	if len(medium) != 2 || medium[0].Topic != "Slices" || medium[1].Topic != "Channels" {
		t.Errorf("medium = %v", medium)
	}
	if len(strong) != 2 || strong[0].Topic != "Maps" || strong[1].Topic != "Interfaces" {
		t.Errorf("strong = %v", strong)
	}

	// Source order and values unchanged.
	if records[0].Topic != "Pointers" || records[4].Mastery != 95 {
		t.Error("Partition mutated its input")
	}
}

// TestWeeklySeriesHelpers covers attempt totals over a series.
func TestWeeklySeriesHelpers(t *testing.T) {
	series := []progress.WeeklyPoint{
		{Label: "01 Jun", Attempts: 0, AvgScore: 0},
		{Label: "08 Jun", Attempts: 3, AvgScore: 72.5},
		{Label: "15 Jun", Attempts: 1, AvgScore: 90},
	}

	if got := progress.TotalAttempts(series); got != 4 {
		t.Errorf("TotalAttempts = %d, want 4", got)
	}
	if got := progress.ActiveWeeks(series); got != 2 {
		t.Errorf("ActiveWeeks = %d, want 2", got)
	}
	if got := progress.TotalAttempts(nil); got != 0 {
		t.Errorf("TotalAttempts(nil) = %d, want 0", got)
	}
}

// TestScore_UnknownDistinctFromZero documents that an absent extreme is
// not the same as a zero score.
func TestScore_UnknownDistinctFromZero(t *testing.T) {
	unknown := progress.Score{}
	zero := progress.Score{Value: 0, Known: true}

	if unknown.Known {
		t.Error("zero-value Score must be unknown")
	}
	if !zero.Known {
		t.Error("explicit zero must be known")
	}
}
