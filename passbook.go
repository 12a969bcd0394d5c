package clubbook

import "sort"

// Kind identifies what a passbook belongs to.
type Kind string

const (
	KindMember Kind = "MEMBER"
	KindVendor Kind = "VENDOR"
	KindClub   Kind = "CLUB"
)

// Metric names a single accumulated figure in a passbook payload.
//
// The payload is an open, string-keyed set: the rule table is the single
// source of truth for which metrics a transaction type touches, and storage
// never interprets them. The constants below are the metrics the built-in
// rules and the profit-share allocator use.
type Metric string

const (
	// Member metrics.
	MetricDeposits          Metric = "totalDepositAmount"
	MetricWithdrawals       Metric = "totalWithdrawalAmount"
	MetricProfitWithdrawals Metric = "profitWithdrawalAmount"
	MetricBalance           Metric = "accountBalance"
	MetricLoanBalance       Metric = "totalLoanBalance"
	MetricInterestPaid      Metric = "totalInterestPaid"

	// Vendor metrics. Invested is money the club put in, Returned is money
	// that came back.
	MetricInvested Metric = "totalInvestedAmount"
	MetricReturned Metric = "totalReturnedAmount"

	// Club metrics.
	MetricClubHeld     Metric = "clubHeldAmount"
	MetricClubLoaned   Metric = "clubLoanedAmount"
	MetricClubDeployed Metric = "clubDeployedAmount"
	MetricClubInterest Metric = "clubInterestCollected"

	// Profit distribution counters, present on every passbook kind.
	MetricOffset  Metric = "offset"
	MetricReturns Metric = "returns"
)

// Passbook is the running ledger record for one member, one vendor, or the
// club itself. Exactly one passbook has kind CLUB.
//
// A passbook is mutated only through an Accumulator commit; it is created
// alongside its owning account and lives as long as the account does.
type Passbook struct {
	ID        string           `json:"id"`
	AccountID string           `json:"accountId"`
	Kind      Kind             `json:"kind"`
	Payload   map[Metric]Money `json:"payload"`

	// Vendor-only attributes, read by the profit-share allocator.
	Lending     bool `json:"lending,omitempty"`     // lending vendors always distribute
	CalcReturns bool `json:"calcReturns,omitempty"` // distribution gate for the others
}

// NewPassbook returns an empty passbook for the given account.
func NewPassbook(id, accountID string, kind Kind) Passbook {
	return Passbook{ID: id, AccountID: accountID, Kind: kind, Payload: map[Metric]Money{}}
}

// Get returns the accumulated amount for a metric, zero when absent.
func (p Passbook) Get(metric Metric) Money {
	return p.Payload[metric]
}

// Offset returns the distribution offset counter.
func (p Passbook) Offset() Money { return p.Get(MetricOffset) }

// Returns returns the realized-returns counter.
func (p Passbook) Returns() Money { return p.Get(MetricReturns) }

// Metrics returns the payload metric names in a stable order.
func (p Passbook) Metrics() []Metric {
	keys := make([]Metric, 0, len(p.Payload))
	for k := range p.Payload {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
