package domain

import "time"

// HarvestRecord is the link and publish time of one harvested headline
type HarvestRecord struct {
	Link      string
	Published string    // publish time as provided by the feed
	Time      time.Time // parsed publish time
}

// Harvest is an insertion-ordered title -> record mapping produced for one search
type Harvest struct {
	titles  []string
	records map[string]HarvestRecord
}

// NewHarvest makes an empty harvest
func NewHarvest() *Harvest {
	return &Harvest{records: map[string]HarvestRecord{}}
}

// Add puts a record under the title. A repeated title keeps its original position
// and takes the newer record.
func (h *Harvest) Add(title string, rec HarvestRecord) {
	if _, ok := h.records[title]; !ok {
		h.titles = append(h.titles, title)
	}
	h.records[title] = rec
}

// Merge adds all entries of other in their order
func (h *Harvest) Merge(other *Harvest) {
	if other == nil {
		return
	}
	for _, title := range other.titles {
		h.Add(title, other.records[title])
	}
}

// Get returns the record for the exact title
func (h *Harvest) Get(title string) (HarvestRecord, bool) {
	rec, ok := h.records[title]
	return rec, ok
}

// Titles returns titles in insertion order
func (h *Harvest) Titles() []string {
	res := make([]string, len(h.titles))
	copy(res, h.titles)
	return res
}

// Len returns number of distinct titles
func (h *Harvest) Len() int {
	return len(h.titles)
}

// Candidate is a stage-1 survivor reconnected to its harvest record
type Candidate struct {
	Title     string
	Link      string
	Published string
	Time      time.Time
}

// VettedItem passed both classification stages in this cycle
type VettedItem struct {
	Title       string
	Link        string // resolved link
	SiteName    string
	Published   string
	Time        time.Time // zero if unknown
	Explanation string
}

// CandidateItem is a vetted item persisted until a report consumes it
type CandidateItem struct {
	ID          int64
	TopicID     int64
	Title       string
	Link        string
	SiteName    string
	Published   *time.Time
	Explanation string
	CreatedAt   time.Time
}

// ToVetted converts persisted item back to the in-cycle form
func (c CandidateItem) ToVetted() VettedItem {
	res := VettedItem{
		Title:       c.Title,
		Link:        c.Link,
		SiteName:    c.SiteName,
		Explanation: c.Explanation,
	}
	if c.Published != nil {
		res.Time = *c.Published
		res.Published = c.Published.UTC().Format(time.RFC1123Z)
	}
	return res
}

// CandidateFromVetted makes a persistable item for the topic
func CandidateFromVetted(topicID int64, v VettedItem) CandidateItem {
	res := CandidateItem{
		TopicID:     topicID,
		Title:       v.Title,
		Link:        v.Link,
		SiteName:    v.SiteName,
		Explanation: v.Explanation,
	}
	if !v.Time.IsZero() {
		ts := v.Time
		res.Published = &ts
	}
	return res
}
