package clubbook

// Values holds the three resolved value kinds a rule can reference.
type Values struct {
	Amount      Money // principal portion for withdrawals, tx amount otherwise
	Total       Money // always the full transaction amount
	DepositDiff Money // profit portion for withdrawals, zero otherwise
}

func (v Values) of(kind ValueKind) Money {
	switch kind {
	case Total:
		return v.Total
	case DepositDiff:
		return v.DepositDiff
	default:
		return v.Amount
	}
}

// resolve computes the value kinds for a transaction.
//
// For a withdrawal it splits the amount into principal and profit against
// the TO passbook's cumulative deposits and withdrawals *as accumulated so
// far this pass*: once total withdrawals would exceed total deposits, the
// excess is profit, not principal.
func resolve(tx Transaction, acc *Accumulator) Values {
	v := Values{Amount: tx.Amount, Total: tx.Amount}
	if tx.Type != TxWithdrawal {
		return v
	}

	pb, ok := acc.Passbook(tx.To)
	if !ok {
		// No passbook, no split; the side will be skipped anyway.
		return v
	}
	priorDeposits := acc.Pending(pb.ID, MetricDeposits)
	priorWithdrawals := acc.Pending(pb.ID, MetricWithdrawals)

	newTotal := priorWithdrawals.Add(tx.Amount)
	profit := newTotal.Sub(priorDeposits)
	if profit.IsNegative() {
		profit = M(0, tx.Amount.Currency())
	}
	if profit.GreaterThan(tx.Amount) {
		// Withdrawals already exceeded deposits before this transaction;
		// everything withdrawn now is profit.
		profit = tx.Amount
	}
	v.DepositDiff = profit
	v.Amount = tx.Amount.Sub(profit)
	return v
}

// revertWithdrawal computes the values for undoing a posted withdrawal.
//
// Deposits may have grown since the original posting, so the split is not
// re-derived: the profit portion is recovered from the recorded
// profit-withdrawal total, capped so no more profit is inverted than was
// ever recorded.
func revertWithdrawal(tx Transaction, acc *Accumulator) Values {
	v := Values{Amount: tx.Amount, Total: tx.Amount}
	pb, ok := acc.Passbook(tx.To)
	if !ok {
		return v
	}
	recorded := acc.Pending(pb.ID, MetricProfitWithdrawals)
	profit := tx.Amount
	if recorded.LessThan(profit) {
		profit = recorded
	}
	if profit.IsNegative() {
		profit = M(0, tx.Amount.Currency())
	}
	v.DepositDiff = profit
	v.Amount = tx.Amount.Sub(profit)
	return v
}
