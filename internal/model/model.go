// Package model defines the keystroke statistics data model.
package model

import (
	"sort"
	"time"

	"github.com/keystr/keystr/internal/clock"
)

// Summary windows.
const (
	WeeklyWindow  = 7 * 24 * time.Hour
	MonthlyWindow = 30 * 24 * time.Hour
)

// DailyRecord holds the count for a single day bucket.
type DailyRecord struct {
	// Date is the day bucket (days since epoch). The JSON name is kept for
	// compatibility with existing data files.
	Date      string `json:"date"`
	Count     uint64 `json:"count"`
	Timestamp uint64 `json:"timestamp"`
}

// Statistics is the aggregate keystroke counter.
type Statistics struct {
	TotalCount   uint64        `json:"total_count"`
	DailyRecords []DailyRecord `json:"daily_records"`
}

// NewStatistics returns an empty store.
func NewStatistics() *Statistics {
	return &Statistics{DailyRecords: []DailyRecord{}}
}

// Increment records one key press at now. A new day bucket gets now as its
// timestamp; existing buckets keep theirs.
func (s *Statistics) Increment(now time.Time) error {
	ts, err := clock.Timestamp(now)
	if err != nil {
		return err
	}

	s.TotalCount++
	bucket := clock.DayBucket(now)
	for i := range s.DailyRecords {
		if s.DailyRecords[i].Date == bucket {
			s.DailyRecords[i].Count++
			return nil
		}
	}

	s.DailyRecords = append(s.DailyRecords, DailyRecord{
		Date:      bucket,
		Count:     1,
		Timestamp: ts,
	})
	return nil
}

// Record returns the record for a day bucket.
func (s *Statistics) Record(bucket string) (DailyRecord, bool) {
	for _, r := range s.DailyRecords {
		if r.Date == bucket {
			return r, true
		}
	}
	return DailyRecord{}, false
}

// Today returns the count recorded for the day bucket containing now.
func (s *Statistics) Today(now time.Time) uint64 {
	r, _ := s.Record(clock.DayBucket(now))
	return r.Count
}

// RecentDaily returns up to n records, newest timestamp first.
func (s *Statistics) RecentDaily(n int) []DailyRecord {
	if n <= 0 {
		return []DailyRecord{}
	}

	records := make([]DailyRecord, len(s.DailyRecords))
	copy(records, s.DailyRecords)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	if len(records) > n {
		records = records[:n]
	}
	return records
}

// WindowedSum sums the counts of records whose timestamp is within window of
// now. The cutoff saturates at zero when now is earlier than the window.
func (s *Statistics) WindowedSum(now time.Time, window time.Duration) uint64 {
	var current uint64
	if secs := now.Unix(); secs > 0 {
		current = uint64(secs)
	}

	span := uint64(window / time.Second)
	var cutoff uint64
	if current > span {
		cutoff = current - span
	}

	var sum uint64
	for _, r := range s.DailyRecords {
		if r.Timestamp >= cutoff {
			sum += r.Count
		}
	}
	return sum
}

// Weekly returns the 7-day sum.
func (s *Statistics) Weekly(now time.Time) uint64 {
	return s.WindowedSum(now, WeeklyWindow)
}

// Monthly returns the 30-day sum.
func (s *Statistics) Monthly(now time.Time) uint64 {
	return s.WindowedSum(now, MonthlyWindow)
}

// Clone returns a deep copy.
func (s *Statistics) Clone() *Statistics {
	records := make([]DailyRecord, len(s.DailyRecords))
	copy(records, s.DailyRecords)
	return &Statistics{
		TotalCount:   s.TotalCount,
		DailyRecords: records,
	}
}

// IsEmpty reports whether nothing has been counted.
func (s *Statistics) IsEmpty() bool {
	return s.TotalCount == 0 && len(s.DailyRecords) == 0
}
