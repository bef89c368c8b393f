package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	EmotionalSupport  TaskType = "Emotional Support"
	GroupWork         TaskType = "Group Work"
	Mentoring         TaskType = "Mentoring"
	SpaceKeeping      TaskType = "Space Keeping"
	ConflictMediation TaskType = "Conflict Mediation"
	Administration    TaskType = "Administration"
	Translation       TaskType = "Translation"
	Listening         TaskType = "Listening"
)

const (
	Peer         RecipientType = "Peer"
	Roommate     RecipientType = "Roommate"
	GroupProject RecipientType = "Group Project"
	Family       RecipientType = "Family"
	Community    RecipientType = "Community"
	Self         RecipientType = "Self"
)

// Bounds enforced on drafts. The input widgets use the same ranges, but the
// store never trusts its callers.
const (
	MinEmotionalWeight = 1
	MaxEmotionalWeight = 5
	MinTimeSpent       = 5
	MaxTimeSpent       = 300
)

type (
	// TaskType is the closed set of care-labor categories. Values are the
	// human-readable labels that appear in persisted data.
	TaskType string

	// RecipientType is the closed set of who the labor was for.
	RecipientType string

	// CareRecord is one logged act of care labor. Records are immutable once
	// created; correction is delete-and-recreate.
	CareRecord struct {
		ID               string        `json:"id"`
		Timestamp        time.Time     `json:"timestamp"`
		TaskType         TaskType      `json:"taskType"`
		RecipientType    RecipientType `json:"recipientType"`
		EmotionalWeight  int           `json:"emotionalWeight"`
		TimeSpentMinutes int           `json:"timeSpentMinutes"`
		Notes            string        `json:"notes"`
		WasVisible       bool          `json:"wasVisible"`
	}

	// Draft holds the user-supplied fields for a new record, before the store
	// assigns id and timestamp.
	Draft struct {
		TaskType         TaskType
		RecipientType    RecipientType
		EmotionalWeight  int
		TimeSpentMinutes int
		Notes            string
		WasVisible       bool
	}
)

var (
	ErrInvalidTaskType        = errors.New("invalid task type")
	ErrInvalidRecipientType   = errors.New("invalid recipient type")
	ErrInvalidEmotionalWeight = fmt.Errorf("emotional weight must be between %d and %d", MinEmotionalWeight, MaxEmotionalWeight)
	ErrInvalidTimeSpent       = fmt.Errorf("time spent must be between %d and %d minutes", MinTimeSpent, MaxTimeSpent)
)

// TaskTypes returns all task categories in display order.
func TaskTypes() []TaskType {
	return []TaskType{
		EmotionalSupport, GroupWork, Mentoring, SpaceKeeping,
		ConflictMediation, Administration, Translation, Listening,
	}
}

// RecipientTypes returns all recipient categories in display order.
func RecipientTypes() []RecipientType {
	return []RecipientType{Peer, Roommate, GroupProject, Family, Community, Self}
}

func (t TaskType) Validate() error {
	switch t {
	case EmotionalSupport, GroupWork, Mentoring, SpaceKeeping,
		ConflictMediation, Administration, Translation, Listening:
		return nil
	default:
		return ErrInvalidTaskType
	}
}

func (r RecipientType) Validate() error {
	switch r {
	case Peer, Roommate, GroupProject, Family, Community, Self:
		return nil
	default:
		return ErrInvalidRecipientType
	}
}

// ParseTaskType maps a persisted label back to its TaskType.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(s)
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", err, s)
	}
	return t, nil
}

// ParseRecipientType maps a persisted label back to its RecipientType.
func ParseRecipientType(s string) (RecipientType, error) {
	r := RecipientType(s)
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", err, s)
	}
	return r, nil
}

// UnmarshalJSON rejects labels outside the closed set so a tampered blob
// cannot smuggle in an unknown category.
func (t *TaskType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTaskType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (r *RecipientType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRecipientType(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Validate checks a draft against the documented bounds. Out-of-range values
// are rejected, never clamped.
func (d Draft) Validate() error {
	if err := d.TaskType.Validate(); err != nil {
		return err
	}
	if err := d.RecipientType.Validate(); err != nil {
		return err
	}
	if d.EmotionalWeight < MinEmotionalWeight || d.EmotionalWeight > MaxEmotionalWeight {
		return ErrInvalidEmotionalWeight
	}
	if d.TimeSpentMinutes < MinTimeSpent || d.TimeSpentMinutes > MaxTimeSpent {
		return ErrInvalidTimeSpent
	}
	return nil
}
