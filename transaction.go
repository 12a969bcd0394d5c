package clubbook

import (
	"fmt"
)

// TxType is a typed string identifying a transaction type.
type TxType string

// The closed enumeration of transaction types. Every type listed here has a
// rule set; TxTypes lists them all.
const (
	TxDeposit       TxType = "deposit"
	TxWithdrawal    TxType = "withdrawal"
	TxTransfer      TxType = "transfer"
	TxLoanTaken     TxType = "loan-taken"
	TxLoanRepay     TxType = "loan-repay"
	TxLoanInterest  TxType = "loan-interest"
	TxVendorInvest  TxType = "vendor-invest"
	TxVendorReturns TxType = "vendor-returns"
	TxRejoin        TxType = "rejoin"
)

// TxTypes lists every known transaction type.
var TxTypes = []TxType{
	TxDeposit, TxWithdrawal, TxTransfer,
	TxLoanTaken, TxLoanRepay, TxLoanInterest,
	TxVendorInvest, TxVendorReturns, TxRejoin,
}

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	for _, t := range TxTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// Transaction is an immutable posted fact. It is read-only to the engine;
// the canonical processing order is ascending (On, Seq).
type Transaction struct {
	ID     string `json:"id"`
	Type   TxType `json:"type"`
	From   string `json:"from,omitempty"` // account id of the giving side
	To     string `json:"to,omitempty"`   // account id of the receiving side
	Amount Money  `json:"amount"`
	On     Date   `json:"on"`
	Seq    int64  `json:"seq,omitempty"` // same-day tiebreaker, assigned by the store
	Method string `json:"method,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Validate checks a transaction before it is posted. Unknown types are a
// hard error here, so only legacy rows can ever reach the rule table's
// skip-and-warn path.
func (t Transaction) Validate() error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%s transaction amount must be positive, got %s", t.Type, t.Amount)
	}
	if t.On.IsZero() {
		return fmt.Errorf("%s transaction has no date", t.Type)
	}
	return nil
}

// Less orders transactions chronologically, posting sequence breaking
// same-day ties. Later logic (loan periods, the withdrawal split, due dates)
// depends on this order for correctness, not just consistency.
func (t Transaction) Less(o Transaction) bool {
	if t.On != o.On {
		return t.On.Before(o.On)
	}
	return t.Seq < o.Seq
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Optional("from", t.From)
	w.Optional("to", t.To)
	w.EmbedFrom(t.Amount)
	w.Append("on", t.On)
	w.Optional("seq", t.Seq)
	w.Optional("method", t.Method)
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}
