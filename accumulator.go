package clubbook

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PassbookUpdate is one pending mutation produced by an Accumulator commit:
// the new absolute value of every metric the pass touched. When Reset is
// set the store wipes the rest of the payload too, which is how a full
// recalculation replaces history instead of stacking on top of it.
type PassbookUpdate struct {
	PassbookID string
	Values     map[Metric]Money
	Reset      bool
}

// Accumulator holds the not-yet-committed passbook deltas of a single
// processing pass. Repeated touches of the same passbook and metric merge
// algebraically, so N transactions collapse into one consistent final value.
//
// An Accumulator is private to one pass; it is never shared across
// goroutines. Until Commit, nothing outside it has changed, so an
// interrupted pass is simply re-run from scratch.
type Accumulator struct {
	byID      map[string]Passbook // base state, keyed by passbook id
	byAccount map[string]string   // account id -> passbook id
	clubID    string
	cur       string // currency of the pass, learned from the first delta
	pending   map[string]map[Metric]decimal.Decimal
	touched   []string // commit order, first touch first
	reset     bool
	warnings  []string
}

// NewAccumulator starts a pass over the given passbooks, using their current
// payloads as the base state.
func NewAccumulator(passbooks []Passbook) *Accumulator {
	acc := &Accumulator{
		byID:      make(map[string]Passbook, len(passbooks)),
		byAccount: make(map[string]string, len(passbooks)),
		pending:   make(map[string]map[Metric]decimal.Decimal),
	}
	for _, pb := range passbooks {
		acc.byID[pb.ID] = pb
		if pb.AccountID != "" {
			acc.byAccount[pb.AccountID] = pb.ID
		}
		if pb.Kind == KindClub {
			acc.clubID = pb.ID
		}
	}
	return acc
}

// NewZeroedAccumulator starts a recalculation pass: every payload is treated
// as empty and the commit carries the Reset flag, so the store replaces
// passbook state wholesale.
func NewZeroedAccumulator(passbooks []Passbook) *Accumulator {
	zeroed := make([]Passbook, len(passbooks))
	for i, pb := range passbooks {
		z := pb
		z.Payload = map[Metric]Money{}
		zeroed[i] = z
	}
	acc := NewAccumulator(zeroed)
	acc.reset = true
	// Every passbook commits on reset, even ones no transaction touches.
	for _, pb := range zeroed {
		acc.touch(pb.ID)
	}
	return acc
}

// Passbook returns the base passbook for an account, ok=false when the
// account has none.
func (a *Accumulator) Passbook(accountID string) (Passbook, bool) {
	id, ok := a.byAccount[accountID]
	if !ok {
		return Passbook{}, false
	}
	return a.byID[id], true
}

// ClubPassbook returns the single club passbook, ok=false when the store
// has none.
func (a *Accumulator) ClubPassbook() (Passbook, bool) {
	if a.clubID == "" {
		return Passbook{}, false
	}
	return a.byID[a.clubID], true
}

// Pending returns the metric value as it stands mid-pass: the base payload
// plus every delta merged so far. The withdrawal split reads its cumulative
// deposit and withdrawal figures through this, never through the committed
// state.
func (a *Accumulator) Pending(passbookID string, metric Metric) Money {
	base := a.byID[passbookID].Get(metric)
	if base.cur == "" {
		// Metrics a passbook never held before carry the pass currency.
		base.cur = a.cur
	}
	if deltas, ok := a.pending[passbookID]; ok {
		if d, ok := deltas[metric]; ok {
			return base.Add(Money{value: d, cur: base.cur})
		}
	}
	return base
}

// Apply merges a signed delta into the pending entry for a passbook.
func (a *Accumulator) Apply(passbookID string, metric Metric, delta Money) {
	if a.cur == "" {
		a.cur = delta.Currency()
	}
	a.touch(passbookID)
	a.pending[passbookID][metric] = a.pending[passbookID][metric].Add(delta.Decimal())
}

func (a *Accumulator) touch(passbookID string) {
	if _, ok := a.pending[passbookID]; !ok {
		a.pending[passbookID] = make(map[Metric]decimal.Decimal)
		a.touched = append(a.touched, passbookID)
	}
}

// ApplyRules merges a transaction's rule set into the pass using the given
// resolved values. A side whose account has no passbook is skipped with a
// warning: the rest of the batch is still good, but the ledger has a hole
// worth reporting.
func (a *Accumulator) ApplyRules(tx Transaction, rs RuleSet, v Values) {
	a.applySide(tx, "from", tx.From, rs.From, v)
	a.applySide(tx, "to", tx.To, rs.To, v)
	if len(rs.Club) > 0 {
		if a.clubID == "" {
			a.warnf("transaction %s (%s): no club passbook", tx.ID, tx.Type)
		} else {
			a.applyRules(a.clubID, rs.Club, v)
		}
	}
}

func (a *Accumulator) applySide(tx Transaction, side, accountID string, rules []Rule, v Values) {
	if len(rules) == 0 {
		return
	}
	id, ok := a.byAccount[accountID]
	if !ok {
		a.warnf("transaction %s (%s): no passbook for %s account %q, side skipped", tx.ID, tx.Type, side, accountID)
		return
	}
	a.applyRules(id, rules, v)
}

func (a *Accumulator) applyRules(passbookID string, rules []Rule, v Values) {
	for _, r := range rules {
		delta := v.of(r.Value)
		if r.Op == Sub {
			delta = delta.Neg()
		}
		a.Apply(passbookID, r.Metric, delta)
	}
}

func (a *Accumulator) warnf(format string, args ...any) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

// Warnings reports the data-integrity conditions absorbed during the pass.
func (a *Accumulator) Warnings() []string { return a.warnings }

// Updates renders the pending state as the list of absolute metric values to
// commit, in first-touch order with metrics sorted for determinism.
func (a *Accumulator) Updates() []PassbookUpdate {
	updates := make([]PassbookUpdate, 0, len(a.touched))
	for _, id := range a.touched {
		values := make(map[Metric]Money, len(a.pending[id]))
		metrics := make([]Metric, 0, len(a.pending[id]))
		for m := range a.pending[id] {
			metrics = append(metrics, m)
		}
		sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })
		for _, m := range metrics {
			values[m] = a.Pending(id, m)
		}
		updates = append(updates, PassbookUpdate{PassbookID: id, Values: values, Reset: a.reset})
	}
	return updates
}

// Commit writes every pending update through the store's atomic bulk apply.
// All-or-nothing: a failed commit leaves every passbook untouched.
func (a *Accumulator) Commit(store Store) error {
	updates := a.Updates()
	if len(updates) == 0 {
		return nil
	}
	if err := store.CommitPassbookUpdates(updates); err != nil {
		return fmt.Errorf("commit %d passbook updates: %w", len(updates), err)
	}
	return nil
}
