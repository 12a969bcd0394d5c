package clubbook

import "fmt"

// ProfitShare is the opt-in/opt-out relation between one vendor and one
// member. Active means the member participates in that vendor's profit
// distribution; inactive members with a live account have their would-be
// share tracked as offset instead.
type ProfitShare struct {
	VendorID      string `json:"vendorId"`
	MemberID      string `json:"memberId"`
	PassbookID    string `json:"passbookId"` // the member's own passbook
	Active        bool   `json:"active"`
	AccountActive bool   `json:"accountActive"` // false once the member left the club
}

// Allocation is the outcome of distributing one vendor's net return.
type Allocation struct {
	Returns     Money // the vendor's net return being distributed
	MemberShare Money // pro-rata share of each participating member
	Offset      Money // member-share × excluded members
	Included    int
	Excluded    int
	Skipped     bool // distribution gate was closed
}

// Allocate distributes a vendor's net return across the members holding a
// profit share in it, merging the deltas into the accumulator.
//
// Net return is |returned − invested|; a lending vendor whose gate is off
// instead distributes |returned| (interest collected is all profit). The
// per-member share rounds half up; the remainder when the head count does
// not divide the return evenly is deliberately not redistributed, matching
// the figures the club has always published.
func Allocate(vendor Passbook, shares []ProfitShare, acc *Accumulator) (Allocation, error) {
	if vendor.Kind != KindVendor {
		return Allocation{}, fmt.Errorf("passbook %s is a %s, not a vendor", vendor.ID, vendor.Kind)
	}

	var returns Money
	switch {
	case vendor.CalcReturns:
		returns = acc.Pending(vendor.ID, MetricReturned).Sub(acc.Pending(vendor.ID, MetricInvested)).Abs()
	case vendor.Lending:
		returns = acc.Pending(vendor.ID, MetricReturned).Abs()
	default:
		return Allocation{Skipped: true}, nil
	}

	var included, excluded int
	for _, s := range shares {
		if s.Active {
			included++
		} else if s.AccountActive {
			excluded++
		}
	}

	share := M(0, returns.Currency())
	if included > 0 {
		share = returns.DivRound(included)
	}

	for _, s := range shares {
		switch {
		case s.Active:
			acc.Apply(s.PassbookID, MetricReturns, share)
		case s.AccountActive:
			acc.Apply(s.PassbookID, MetricOffset, share)
		}
	}

	offset := share.MulInt(excluded)
	acc.Apply(vendor.ID, MetricOffset, offset)
	acc.Apply(vendor.ID, MetricReturns, returns)
	if club, ok := acc.ClubPassbook(); ok {
		acc.Apply(club.ID, MetricOffset, offset)
		acc.Apply(club.ID, MetricReturns, returns)
	}

	return Allocation{
		Returns:     returns,
		MemberShare: share,
		Offset:      offset,
		Included:    included,
		Excluded:    excluded,
	}, nil
}
