package clubbook

// Op is the direction a rule applies its value in.
type Op int

const (
	Add Op = iota
	Sub
)

// ValueKind selects which resolved value a rule consumes.
//
// Amount and Total are identical except for withdrawals, where Amount is the
// principal portion, DepositDiff the profit portion, and Total the full
// withdrawn amount. See resolve.
type ValueKind int

const (
	Amount ValueKind = iota
	Total
	DepositDiff
)

// Rule is one (metric, operation, value) delta applied to a passbook side.
type Rule struct {
	Metric Metric
	Op     Op
	Value  ValueKind
}

// RuleSet holds the deltas a transaction type applies to the FROM account,
// the TO account, and the club passbook. Empty sides are untouched.
type RuleSet struct {
	From []Rule
	To   []Rule
	Club []Rule
}

func add(m Metric, v ValueKind) Rule { return Rule{Metric: m, Op: Add, Value: v} }
func sub(m Metric, v ValueKind) Rule { return Rule{Metric: m, Op: Sub, Value: v} }

// rulesFor maps a transaction type to its rule set. The switch is exhaustive
// over the closed TxType enumeration: adding a type without a rule set shows
// up immediately in TestRulesExhaustive, and unknown strings (only reachable
// from legacy data, posting validates types) report ok=false so the caller
// can skip with a warning.
func rulesFor(t TxType) (rs RuleSet, ok bool) {
	switch t {
	case TxDeposit:
		return RuleSet{
			To: []Rule{
				add(MetricDeposits, Amount),
				add(MetricBalance, Amount),
			},
			Club: []Rule{add(MetricClubHeld, Amount)},
		}, true

	case TxWithdrawal:
		// Amount is the principal portion, DepositDiff the profit portion.
		// The balance only ever held principal, so it shrinks by Amount;
		// the club hands out the full Total.
		return RuleSet{
			To: []Rule{
				add(MetricWithdrawals, Total),
				add(MetricProfitWithdrawals, DepositDiff),
				sub(MetricBalance, Amount),
			},
			Club: []Rule{sub(MetricClubHeld, Total)},
		}, true

	case TxTransfer:
		return RuleSet{
			From: []Rule{sub(MetricBalance, Amount)},
			To:   []Rule{add(MetricBalance, Amount)},
		}, true

	case TxLoanTaken:
		return RuleSet{
			To: []Rule{add(MetricLoanBalance, Amount)},
			Club: []Rule{
				sub(MetricClubHeld, Amount),
				add(MetricClubLoaned, Amount),
			},
		}, true

	case TxLoanRepay:
		return RuleSet{
			From: []Rule{sub(MetricLoanBalance, Amount)},
			Club: []Rule{
				add(MetricClubHeld, Amount),
				sub(MetricClubLoaned, Amount),
			},
		}, true

	case TxLoanInterest:
		return RuleSet{
			From: []Rule{add(MetricInterestPaid, Amount)},
			Club: []Rule{
				add(MetricClubHeld, Amount),
				add(MetricClubInterest, Amount),
			},
		}, true

	case TxVendorInvest:
		return RuleSet{
			To: []Rule{add(MetricInvested, Amount)},
			Club: []Rule{
				sub(MetricClubHeld, Amount),
				add(MetricClubDeployed, Amount),
			},
		}, true

	case TxVendorReturns:
		return RuleSet{
			From: []Rule{add(MetricReturned, Amount)},
			Club: []Rule{
				add(MetricClubHeld, Amount),
				sub(MetricClubDeployed, Amount),
			},
		}, true

	case TxRejoin:
		// A returning member's buy-back counts as fresh deposits.
		return RuleSet{
			To: []Rule{
				add(MetricDeposits, Amount),
				add(MetricBalance, Amount),
			},
			Club: []Rule{add(MetricClubHeld, Amount)},
		}, true
	}
	return RuleSet{}, false
}

// invert flips every operation in a rule set, for reverting a posted
// transaction.
func (rs RuleSet) invert() RuleSet {
	flip := func(rules []Rule) []Rule {
		out := make([]Rule, len(rules))
		for i, r := range rules {
			out[i] = r
			if r.Op == Add {
				out[i].Op = Sub
			} else {
				out[i].Op = Add
			}
		}
		return out
	}
	return RuleSet{From: flip(rs.From), To: flip(rs.To), Club: flip(rs.Club)}
}
