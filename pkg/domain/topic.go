package domain

import (
	"fmt"
	"time"
)

// SearchPlanSize is the number of search strings every topic carries
const SearchPlanSize = 7

// Contact is the reporting cadence selected for a topic
type Contact int

// supported cadences, ordered from most to least frequent
const (
	ContactImmediately Contact = iota
	ContactTwiceADay
	ContactDaily
	ContactEveryTwoDays
	ContactEveryThreeDays
	ContactEveryFourDays
	ContactEveryFiveDays
	ContactWeekly
)

var contactHours = map[Contact]int{
	ContactImmediately:    0,
	ContactTwiceADay:      12,
	ContactDaily:          24,
	ContactEveryTwoDays:   48,
	ContactEveryThreeDays: 72,
	ContactEveryFourDays:  96,
	ContactEveryFiveDays:  120,
	ContactWeekly:         168,
}

var contactNames = map[Contact]string{
	ContactImmediately:    "immediately",
	ContactTwiceADay:      "twice a day",
	ContactDaily:          "once a day",
	ContactEveryTwoDays:   "once every 2 days",
	ContactEveryThreeDays: "once every 3 days",
	ContactEveryFourDays:  "once every 4 days",
	ContactEveryFiveDays:  "once every 5 days",
	ContactWeekly:         "once a week",
}

// Valid reports whether c is one of the known cadences
func (c Contact) Valid() bool {
	_, ok := contactHours[c]
	return ok
}

// Hours returns the minimum number of hours between two reports
func (c Contact) Hours() int {
	return contactHours[c]
}

// Cadence returns the minimum delay between two reports
func (c Contact) Cadence() time.Duration {
	return time.Duration(contactHours[c]) * time.Hour
}

// String returns human-readable cadence name
func (c Contact) String() string {
	if name, ok := contactNames[c]; ok {
		return name
	}
	return fmt.Sprintf("contact(%d)", int(c))
}

// Topic represents a standing monitored interest.
// Searches is the search plan generated once at creation and reused every cycle.
// Version is bumped on every committed change and used for optimistic updates.
type Topic struct {
	ID          int64
	AccountID   int64
	Title       string
	Interest    string
	Searches    []string
	Sources     int // required amount of vetted items before a report fires
	Contact     Contact
	Checkpoint  time.Time // last successful harvest
	LastReport  time.Time
	ReportsSent int
	Version     int64
	CreatedAt   time.Time
}

// Validate checks topic invariants
func (t *Topic) Validate() error {
	if t.Interest == "" {
		return fmt.Errorf("interest is required")
	}
	if len(t.Searches) != SearchPlanSize {
		return fmt.Errorf("search plan must have %d entries, got %d", SearchPlanSize, len(t.Searches))
	}
	for i, s := range t.Searches {
		if s == "" {
			return fmt.Errorf("search %d is empty", i)
		}
	}
	if t.Sources < 1 {
		return fmt.Errorf("sources threshold must be at least 1, got %d", t.Sources)
	}
	if !t.Contact.Valid() {
		return fmt.Errorf("unknown contact cadence %d", t.Contact)
	}
	return nil
}

// Account is the owner of topics and the report recipient
type Account struct {
	ID          int64
	Email       string
	ReportsSent int
	CreatedAt   time.Time
}
