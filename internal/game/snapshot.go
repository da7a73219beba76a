package game

// snapshot is a structural copy of the four game-state sub-structures. All
// four are value types, so plain struct assignment captures them fully.
type snapshot struct {
	field      FieldState
	clock      ClockState
	score      Scoreboard
	possession Possession
}

// Tx guards one atomic transition against a GameState. BeginTx captures a
// snapshot; exactly one of Commit or Rollback must follow. Rollback replaces
// the sub-states wholesale rather than patching fields, so it restores the
// pre-transaction state no matter how many mutation steps already ran.
//
// Misusing a Tx (finishing it twice, or finishing a zero Tx that was never
// begun) is a caller bug and panics rather than corrupting state.
type Tx struct {
	state  *GameState
	snap   snapshot
	active bool
}

// BeginTx snapshots the state and opens a transaction on it.
func BeginTx(state *GameState) *Tx {
	if state == nil {
		panic("game: BeginTx on nil state")
	}
	return &Tx{
		state: state,
		snap: snapshot{
			field:      state.Field,
			clock:      state.Clock,
			score:      state.Score,
			possession: state.Possession,
		},
		active: true,
	}
}

// Commit keeps all mutations made since BeginTx and closes the transaction.
func (tx *Tx) Commit() {
	if !tx.active {
		panic("game: Commit without active transaction")
	}
	tx.active = false
}

// Rollback restores the snapshot wholesale and closes the transaction.
func (tx *Tx) Rollback() {
	if !tx.active {
		panic("game: Rollback without active transaction")
	}
	tx.state.Field = tx.snap.field
	tx.state.Clock = tx.snap.clock
	tx.state.Score = tx.snap.score
	tx.state.Possession = tx.snap.possession
	tx.active = false
}

// Active reports whether the transaction is still open.
func (tx *Tx) Active() bool {
	return tx.active
}
