package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SQLiteTime is a time.Time wrapper that can scan SQLite datetime strings.
type SQLiteTime struct {
	time.Time
}

// Scan implements sql.Scanner for SQLiteTime.
func (st *SQLiteTime) Scan(value interface{}) error {
	if value == nil {
		st.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		st.Time = v
		return nil
	case string:
		layouts := []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05Z",
			"2006-01-02 15:04:05.999999999-07:00",
			"2006-01-02 15:04:05.999999-07:00",
			"2006-01-02 15:04:05-07:00",
			"2006-01-02 15:04:05",
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v); err == nil {
				st.Time = t
				return nil
			}
		}
		return errors.New("unable to parse time: " + v)
	default:
		return errors.New("unsupported type for SQLiteTime")
	}
}

// Value implements driver.Valuer for SQLiteTime.
func (st SQLiteTime) Value() (driver.Value, error) {
	return st.Time.UTC().Format("2006-01-02T15:04:05Z"), nil
}

// Now returns the current time as SQLiteTime (in UTC).
func Now() SQLiteTime {
	return SQLiteTime{Time: time.Now().UTC()}
}

// NewSQLiteTime creates a SQLiteTime from a time.Time (converted to UTC).
func NewSQLiteTime(t time.Time) SQLiteTime {
	return SQLiteTime{Time: t.UTC()}
}

// JSONMap is a map that can be stored as JSONB, used for the solve request
// payload persisted alongside each SolveRun.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, m)
}

// SolveRun is one audit row recorded for a solve invocation.
type SolveRun struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	Timezone   string     `json:"timezone" db:"timezone"`
	Placed     int        `json:"placed" db:"placed"`
	Moved      int        `json:"moved" db:"moved"`
	Unplaced   int        `json:"unplaced" db:"unplaced"`
	Score      *int       `json:"score" db:"score"`
	Summary    string     `json:"summary" db:"summary"`
	Request    JSONMap    `json:"request" db:"request"`
	CreatedAt  SQLiteTime `json:"created_at" db:"created_at"`
}

// ----------------------------------------------------------------------
// Solve request/response contract (spec.md §6).
// ----------------------------------------------------------------------

// SolveRequest is the top-level input document consumed from a file or
// standard input.
type SolveRequest struct {
	User         UserInput         `json:"user"`
	Horizon      HorizonInput      `json:"horizon"`
	Availability AvailabilityInput `json:"availability"`
	Events       EventsInput       `json:"events"`
	Weights      WeightsInput      `json:"weights"`
	Policy       PolicyInput       `json:"policy"`
}

// UserInput identifies the calendar owner and their timezone.
type UserInput struct {
	ID       string `json:"id"`
	Timezone string `json:"timezone"`
}

// HorizonInput bounds the scheduling window.
type HorizonInput struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	SlotMinutes int    `json:"slotMinutes"`
}

// AvailabilityInput carries the user's preferred-availability ranges.
type AvailabilityInput struct {
	Preferred    []TimeRangeInput `json:"preferred"`
	FallbackUsed bool             `json:"fallbackUsed"`
}

// TimeRangeInput is an ISO-8601 half-open wall-clock interval.
type TimeRangeInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EventsInput groups every event collection the request carries.
type EventsInput struct {
	Fixed    []FixedEventInput    `json:"fixed"`
	NewFixed []FixedEventInput    `json:"newFixed"`
	Movable  []FlexibleEventInput `json:"movable"`
	New      []FlexibleEventInput `json:"new"`
}

// FixedEventInput describes an immovable event; *Ptr fields distinguish
// "absent" from "explicitly false" so defaulting rules (spec.md §6) apply.
type FixedEventInput struct {
	ID             string `json:"id"`
	Start          string `json:"start"`
	End            string `json:"end"`
	BlocksCapacity *bool  `json:"blocksCapacity,omitempty"`
	IsInPerson     *bool  `json:"isInPerson,omitempty"`
	CanOverlap     *bool  `json:"canOverlap,omitempty"`
}

// FlexibleEventInput describes a movable or brand-new flexible event.
type FlexibleEventInput struct {
	ID           string `json:"id"`
	Priority     string `json:"priority"`
	DurationMin  int    `json:"durationMin"`
	IsInPerson   *bool  `json:"isInPerson,omitempty"`
	CanOverlap   *bool  `json:"canOverlap,omitempty"`
	CurrentStart string `json:"currentStart,omitempty"`
	Window       string `json:"window"`
	WindowStart  string `json:"windowStart,omitempty"`
	WindowEnd    string `json:"windowEnd,omitempty"`
}

// WeightPair carries a weight for each priority.
type WeightPair struct {
	UnI int `json:"UnI"`
	InU int `json:"InU"`
}

// WeightsInput holds the per-priority cost weights (spec.md §4.4).
type WeightsInput struct {
	Move                  WeightPair `json:"move"`
	DistancePerSlot        WeightPair `json:"distancePerSlot"`
	OffPreferencePerSlot   WeightPair `json:"offPreferencePerSlot"`
	CrossDayPerEvent       WeightPair `json:"crossDayPerEvent"`
}

// PolicyInput holds the knobs described in spec.md §6.
type PolicyInput struct {
	ActiveDays             []int `json:"activeDays,omitempty"`
	AllowWeekend           *bool `json:"allowWeekend,omitempty"`
	DayStart               string `json:"dayStart,omitempty"`
	DayEnd                 string `json:"dayEnd,omitempty"`
	EventBufferMinutes     int   `json:"eventBufferMinutes,omitempty"`
	SchedulingLeadMinutes  int   `json:"schedulingLeadMinutes,omitempty"`
	NoOverlapCapacity      *int  `json:"noOverlapCapacity,omitempty"`
	RemoteCapacity         *int  `json:"remoteCapacity,omitempty"`
}

// SolveResponse is the output contract (spec.md §6).
type SolveResponse struct {
	Placed      []PlacedEvent   `json:"placed"`
	Moved       []MovedEvent    `json:"moved"`
	Unplaced    []UnplacedEvent `json:"unplaced"`
	Score       *int            `json:"score"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

// PlacedEvent is one scheduled flexible event.
type PlacedEvent struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// MovedEvent records a repositioned movable event.
type MovedEvent struct {
	ID        string `json:"id"`
	FromStart string `json:"fromStart"`
	ToStart   string `json:"toStart"`
	Reason    string `json:"reason"`
}

// UnplacedEvent records a flexible event the solver could not place.
type UnplacedEvent struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Diagnostics carries the hard-conflict list and the human-readable summary.
type Diagnostics struct {
	HardConflicts []string `json:"hardConflicts"`
	Summary       string   `json:"summary"`
}
