package core

// Summary is a compact aggregate over a record collection.
type Summary struct {
	RecordCount    int
	TotalHours     float64
	InvisibleHours float64
	TotalWeight    int
	ByTaskType     map[TaskType]int
	ByRecipient    map[RecipientType]int
}

// TotalHours sums time across all records, in hours.
func TotalHours(records []CareRecord) float64 {
	minutes := 0
	for _, r := range records {
		minutes += r.TimeSpentMinutes
	}
	return float64(minutes) / 60
}

// InvisibleHours sums time across records whose labor went unacknowledged.
func InvisibleHours(records []CareRecord) float64 {
	minutes := 0
	for _, r := range records {
		if !r.WasVisible {
			minutes += r.TimeSpentMinutes
		}
	}
	return float64(minutes) / 60
}

// TotalEmotionalWeight sums emotional weight across all records.
func TotalEmotionalWeight(records []CareRecord) int {
	total := 0
	for _, r := range records {
		total += r.EmotionalWeight
	}
	return total
}

// CountByTaskType counts records per task category. Categories with no
// records are omitted from the map.
func CountByTaskType(records []CareRecord) map[TaskType]int {
	counts := make(map[TaskType]int)
	for _, r := range records {
		counts[r.TaskType]++
	}
	return counts
}

// CountByRecipientType counts records per recipient category. Categories with
// no records are omitted from the map.
func CountByRecipientType(records []CareRecord) map[RecipientType]int {
	counts := make(map[RecipientType]int)
	for _, r := range records {
		counts[r.RecipientType]++
	}
	return counts
}

// Summarize computes all aggregates in a single pass.
func Summarize(records []CareRecord) Summary {
	s := Summary{
		RecordCount: len(records),
		ByTaskType:  make(map[TaskType]int),
		ByRecipient: make(map[RecipientType]int),
	}
	totalMinutes := 0
	invisibleMinutes := 0
	for _, r := range records {
		totalMinutes += r.TimeSpentMinutes
		if !r.WasVisible {
			invisibleMinutes += r.TimeSpentMinutes
		}
		s.TotalWeight += r.EmotionalWeight
		s.ByTaskType[r.TaskType]++
		s.ByRecipient[r.RecipientType]++
	}
	s.TotalHours = float64(totalMinutes) / 60
	s.InvisibleHours = float64(invisibleMinutes) / 60
	return s
}
