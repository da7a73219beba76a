package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverExplicitMappingWinsFirst(t *testing.T) {
	// The injected mapping deliberately contradicts the team records in the
	// state; the mapping tier must win.
	state := NewTestState()
	r := NewResolver(testLogger(), WithMapping(map[int]Slot{
		1: SlotAway,
		2: SlotHome,
	}))

	slot, err := r.Resolve(IDRef(1), state)
	require.NoError(t, err)
	assert.Equal(t, SlotAway, slot)
}

func TestResolverCanonicalSlot(t *testing.T) {
	r := NewResolver(testLogger())

	slot, err := r.Resolve(SlotRef(SlotAway), NewTestState())
	require.NoError(t, err)
	assert.Equal(t, SlotAway, slot)
}

func TestResolverReconstructsFromTeamRecords(t *testing.T) {
	state := NewTestState()
	r := NewResolver(testLogger())

	tests := []struct {
		name string
		ref  TeamRef
		want Slot
	}{
		{"by id home", IDRef(1), SlotHome},
		{"by id away", IDRef(2), SlotAway},
		{"by name", NameRef("Shelbyville Sharks"), SlotAway},
		{"by name case-insensitive", NameRef("springfield atoms"), SlotHome},
		{"by abbreviation", NameRef("SHV"), SlotAway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := r.Resolve(tt.ref, state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slot)
		})
	}
}

func TestResolverLegacyHeuristic(t *testing.T) {
	r := NewResolver(testLogger())
	state := NewTestState()

	tests := []struct {
		raw  string
		want Slot
	}{
		{"home", SlotHome},
		{"AWAY", SlotAway},
		{" visitor ", SlotAway},
		{"0", SlotHome},
		{"1", SlotAway},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			slot, err := r.Resolve(LegacyRef(tt.raw), state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slot)
		})
	}
}

func TestResolverFailsClosed(t *testing.T) {
	r := NewResolver(testLogger())
	state := NewTestState()

	// Unrecognized or neutral references must never silently land on a
	// slot. This is the fix for the old default-to-home behavior.
	tests := []struct {
		name string
		ref  TeamRef
	}{
		{"empty reference", TeamRef{}},
		{"unknown name", NameRef("Ogdenville Outlaws")},
		{"unknown id", IDRef(99)},
		{"neutral legacy string", LegacyRef("neutral")},
		{"out-of-range legacy index", LegacyRef("2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.ref, state)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnresolvedTeam)
		})
	}
}

func TestResolverNilStateOnlyBreaksReconstruction(t *testing.T) {
	r := NewResolver(testLogger())

	// Canonical slot refs need no game state.
	slot, err := r.Resolve(SlotRef(SlotHome), nil)
	require.NoError(t, err)
	assert.Equal(t, SlotHome, slot)

	// Record reconstruction does.
	_, err = r.Resolve(IDRef(1), nil)
	assert.ErrorIs(t, err, ErrUnresolvedTeam)
}
