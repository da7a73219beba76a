package game

import "fmt"

// ChangeType tags which piece of game state a mutation touched.
type ChangeType string

const (
	ChangeFieldPosition ChangeType = "field_position"
	ChangeDown          ChangeType = "down"
	ChangeYardsToGo     ChangeType = "yards_to_go"
	ChangeClock         ChangeType = "clock"
	ChangeClockRunning  ChangeType = "clock_running"
	ChangeQuarter       ChangeType = "quarter"
	ChangeHomeScore     ChangeType = "home_score"
	ChangeAwayScore     ChangeType = "away_score"
	ChangePossession    ChangeType = "possession"
)

// String returns the string representation of the change type
func (ct ChangeType) String() string {
	return string(ct)
}

// ChangeRecord captures one mutation applied during a transition, with the
// value before and after. The downstream play logger consumes these in the
// order they were applied.
type ChangeRecord struct {
	Type   ChangeType `json:"type"`
	Before int        `json:"before"`
	After  int        `json:"after"`
}

// String formats the record for play-by-play logs.
func (cr ChangeRecord) String() string {
	return fmt.Sprintf("%s: %d -> %d", cr.Type, cr.Before, cr.After)
}

// changeLog accumulates the ordered mutations of one transition.
type changeLog struct {
	records []ChangeRecord
}

// record appends a change, skipping no-ops so the log reflects only real
// mutations.
func (cl *changeLog) record(t ChangeType, before, after int) {
	if before == after {
		return
	}
	cl.records = append(cl.records, ChangeRecord{Type: t, Before: before, After: after})
}

func (cl *changeLog) recordBool(t ChangeType, before, after bool) {
	cl.record(t, boolInt(before), boolInt(after))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
