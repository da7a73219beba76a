package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gridironlabs/gridiron/cmd/gridiron/shared"
	"github.com/gridironlabs/gridiron/internal/game"
)

// ValidateCmd audits recorded scoring transitions from a JSON file and
// reports any rule violations.
type ValidateCmd struct {
	File   string `kong:"arg='',help='JSON file of scoring transitions, or - for stdin'"`
	Strict bool   `kong:"help='Treat warnings as failures'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

// scoreCheckRecord is the file form of one scoring transition.
type scoreCheckRecord struct {
	Outcome         string `json:"outcome"`
	Category        string `json:"category"`
	FieldPosition   int    `json:"field_position"`
	Down            int    `json:"down"`
	ScoringSlot     string `json:"scoring_slot"`
	HomeBefore      int    `json:"home_before"`
	HomeAfter       int    `json:"home_after"`
	AwayBefore      int    `json:"away_before"`
	AwayAfter       int    `json:"away_after"`
	PreviousOutcome string `json:"previous_outcome,omitempty"`
}

func (r scoreCheckRecord) toCheck() (game.ScoreCheck, error) {
	var slot game.Slot
	switch r.ScoringSlot {
	case "home":
		slot = game.SlotHome
	case "away":
		slot = game.SlotAway
	default:
		return game.ScoreCheck{}, fmt.Errorf("unknown scoring_slot %q", r.ScoringSlot)
	}
	return game.ScoreCheck{
		Outcome:         game.OutcomeTag(r.Outcome),
		Category:        game.PlayCategory(r.Category),
		FieldPosition:   r.FieldPosition,
		Down:            r.Down,
		ScoringSlot:     slot,
		HomeBefore:      r.HomeBefore,
		HomeAfter:       r.HomeAfter,
		AwayBefore:      r.AwayBefore,
		AwayAfter:       r.AwayAfter,
		PreviousOutcome: game.OutcomeTag(r.PreviousOutcome),
	}, nil
}

func (c *ValidateCmd) Run() error {
	level := "info"
	if c.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	var reader io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = f
	}

	var records []scoreCheckRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return fmt.Errorf("decoding transitions: %w", err)
	}

	validator := game.NewScoreValidator()
	var errCount, warnCount int
	for i, record := range records {
		check, err := record.toCheck()
		if err != nil {
			return fmt.Errorf("transition %d: %w", i+1, err)
		}
		result := validator.Check(check)
		for _, issue := range result.Errors() {
			errCount++
			logger.Error(issue.Message, "transition", i+1, "rule", issue.Rule, "field", issue.Field)
		}
		for _, issue := range result.Warnings() {
			warnCount++
			logger.Warn(issue.Message, "transition", i+1, "rule", issue.Rule, "field", issue.Field)
		}
	}

	logger.Info("validation complete",
		"transitions", len(records),
		"errors", errCount,
		"warnings", warnCount)

	if errCount > 0 || (c.Strict && warnCount > 0) {
		return fmt.Errorf("%d error(s), %d warning(s) in %d transitions", errCount, warnCount, len(records))
	}
	fmt.Printf("OK: %d transitions validated\n", len(records))
	return nil
}
