package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnresolvedTeam is returned when a team reference cannot be mapped to a
// scoreboard slot. The resolver fails closed: it never defaults to a slot.
var ErrUnresolvedTeam = errors.New("team reference cannot be resolved to a scoreboard slot")

// refKind tags the representation a TeamRef arrived in.
type refKind int

const (
	refNone refKind = iota
	refSlot
	refID
	refName
	refLegacy
)

// TeamRef is the closed set of team-identifier representations accepted at
// the engine boundary. Upstream callers historically passed slots, numeric
// ids, team names, or raw legacy strings; everything downstream of the
// resolver operates only on Slot.
type TeamRef struct {
	kind   refKind
	slot   Slot
	id     int
	name   string
	legacy string
}

// SlotRef builds a reference that already carries its canonical slot.
func SlotRef(slot Slot) TeamRef {
	return TeamRef{kind: refSlot, slot: slot}
}

// IDRef builds a reference by numeric team id.
func IDRef(id int) TeamRef {
	return TeamRef{kind: refID, id: id}
}

// NameRef builds a reference by team name or abbreviation.
func NameRef(name string) TeamRef {
	return TeamRef{kind: refName, name: name}
}

// LegacyRef builds a reference from an uninterpreted legacy string, resolved
// only by the last-resort heuristic tier.
func LegacyRef(raw string) TeamRef {
	return TeamRef{kind: refLegacy, legacy: raw}
}

// IsZero reports whether the reference is empty.
func (r TeamRef) IsZero() bool {
	return r.kind == refNone
}

// String returns a loggable description of the reference.
func (r TeamRef) String() string {
	switch r.kind {
	case refSlot:
		return "slot:" + r.slot.String()
	case refID:
		return fmt.Sprintf("id:%d", r.id)
	case refName:
		return "name:" + r.name
	case refLegacy:
		return "legacy:" + r.legacy
	}
	return "none"
}

// Resolver maps a TeamRef to exactly one of the two scoreboard slots. The
// tiers run in a fixed order:
//
//  1. an explicitly injected id->slot mapping
//  2. the reference's own canonical slot, if it carries one
//  3. reconstruction from the two team records stored in the game state
//  4. a legacy numeric/string heuristic
//
// Every tier past the first logs the fallback it took, so misattribution is
// observable in the play log rather than silent. An unrecognized or neutral
// reference returns ErrUnresolvedTeam; the historical silent default to the
// home slot has been removed.
type Resolver struct {
	mapping map[int]Slot
	logger  *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMapping injects an explicit team-id to slot mapping, the highest
// resolution tier.
func WithMapping(mapping map[int]Slot) ResolverOption {
	return func(r *Resolver) {
		r.mapping = mapping
	}
}

// NewResolver creates a resolver. The logger must not be nil; fallback tiers
// depend on it for auditability.
func NewResolver(logger *log.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{logger: logger.WithPrefix("resolver")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps ref to a scoreboard slot using state's team records for the
// reconstruction tier. It fails closed on anything it does not recognize.
func (r *Resolver) Resolve(ref TeamRef, state *GameState) (Slot, error) {
	if ref.IsZero() {
		return 0, fmt.Errorf("%w: empty reference", ErrUnresolvedTeam)
	}

	// Tier 1: explicit injected mapping.
	if ref.kind == refID && r.mapping != nil {
		if slot, ok := r.mapping[ref.id]; ok {
			return slot, nil
		}
	}

	// Tier 2: the reference carries its own canonical slot.
	if ref.kind == refSlot {
		r.logger.Debug("resolved via canonical slot", "ref", ref.String())
		return ref.slot, nil
	}

	// Tier 3: reconstruct from the two team records in the game state.
	if slot, ok := r.matchTeamRecords(ref, state); ok {
		r.logger.Warn("resolved via team-record reconstruction", "ref", ref.String(), "slot", slot)
		return slot, nil
	}

	// Tier 4: legacy numeric/string heuristic.
	if slot, ok := legacyHeuristic(ref); ok {
		r.logger.Warn("resolved via legacy heuristic", "ref", ref.String(), "slot", slot)
		return slot, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnresolvedTeam, ref.String())
}

// matchTeamRecords compares the reference against the home and away team
// records stored in the scoreboard.
func (r *Resolver) matchTeamRecords(ref TeamRef, state *GameState) (Slot, bool) {
	if state == nil {
		return 0, false
	}
	home, away := state.Score.Home, state.Score.Away

	switch ref.kind {
	case refID:
		if ref.id == home.ID {
			return SlotHome, true
		}
		if ref.id == away.ID {
			return SlotAway, true
		}
	case refName:
		if matchesTeam(ref.name, home) {
			return SlotHome, true
		}
		if matchesTeam(ref.name, away) {
			return SlotAway, true
		}
	}
	return 0, false
}

func matchesTeam(name string, team TeamInfo) bool {
	return strings.EqualFold(name, team.Name) || strings.EqualFold(name, team.Abbr)
}

// legacyHeuristic interprets the raw strings older season files used: "0"
// and "1" slot indexes, or the literal words "home" and "away".
func legacyHeuristic(ref TeamRef) (Slot, bool) {
	var raw string
	switch ref.kind {
	case refLegacy:
		raw = ref.legacy
	case refName:
		raw = ref.name
	default:
		return 0, false
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home", "h":
		return SlotHome, true
	case "away", "a", "visitor":
		return SlotAway, true
	}
	if n, err := strconv.Atoi(raw); err == nil {
		switch n {
		case 0:
			return SlotHome, true
		case 1:
			return SlotAway, true
		}
	}
	return 0, false
}
