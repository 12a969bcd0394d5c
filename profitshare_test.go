package clubbook

import "testing"

// vendorBooks returns a club with one vendor and five members holding a
// profit share in it: four opted in, one opted out but still a member.
func vendorBooks(lending, calcReturns bool) ([]Passbook, []ProfitShare) {
	books := []Passbook{
		NewPassbook("pb-club", "club", KindClub),
		NewPassbook("pb-acme", "acme", KindVendor),
	}
	books[1].Lending = lending
	books[1].CalcReturns = calcReturns

	var shares []ProfitShare
	members := []struct {
		id     string
		active bool
	}{
		{"m1", true}, {"m2", true}, {"m3", true}, {"m4", true}, {"m5", false},
	}
	for _, m := range members {
		books = append(books, NewPassbook("pb-"+m.id, m.id, KindMember))
		shares = append(shares, ProfitShare{
			VendorID:      "acme",
			MemberID:      m.id,
			PassbookID:    "pb-" + m.id,
			Active:        m.active,
			AccountActive: true,
		})
	}
	return books, shares
}

func TestAllocate(t *testing.T) {
	books, shares := vendorBooks(false, true)
	books[1].Payload[MetricInvested] = INR(1000)
	books[1].Payload[MetricReturned] = INR(10000)
	acc := NewAccumulator(books)

	alloc, err := Allocate(books[1], shares, acc)
	if err != nil {
		t.Fatal(err)
	}
	if alloc.Skipped {
		t.Fatal("allocation skipped, want distributed")
	}
	if !alloc.Returns.Equal(INR(9000)) {
		t.Errorf("returns = %s, want %s", alloc.Returns, INR(9000))
	}
	if alloc.Included != 4 || alloc.Excluded != 1 {
		t.Errorf("included/excluded = %d/%d, want 4/1", alloc.Included, alloc.Excluded)
	}
	if !alloc.MemberShare.Equal(INR(2250)) {
		t.Errorf("member share = %s, want %s", alloc.MemberShare, INR(2250))
	}
	if !alloc.Offset.Equal(INR(2250)) {
		t.Errorf("offset = %s, want %s", alloc.Offset, INR(2250))
	}

	// Opted-in members got returns, the opted-out member got offset.
	for _, id := range []string{"pb-m1", "pb-m2", "pb-m3", "pb-m4"} {
		if got := acc.Pending(id, MetricReturns); !got.Equal(INR(2250)) {
			t.Errorf("%s returns = %s, want %s", id, got, INR(2250))
		}
	}
	if got := acc.Pending("pb-m5", MetricOffset); !got.Equal(INR(2250)) {
		t.Errorf("pb-m5 offset = %s, want %s", got, INR(2250))
	}
	if got := acc.Pending("pb-m5", MetricReturns); !got.IsZero() {
		t.Errorf("pb-m5 returns = %s, want zero", got)
	}

	// Vendor and club track the distribution totals.
	for _, id := range []string{"pb-acme", "pb-club"} {
		if got := acc.Pending(id, MetricReturns); !got.Equal(INR(9000)) {
			t.Errorf("%s returns = %s, want %s", id, got, INR(9000))
		}
		if got := acc.Pending(id, MetricOffset); !got.Equal(INR(2250)) {
			t.Errorf("%s offset = %s, want %s", id, got, INR(2250))
		}
	}
}

func TestAllocateGateClosed(t *testing.T) {
	books, shares := vendorBooks(false, false)
	books[1].Payload[MetricReturned] = INR(10000)
	acc := NewAccumulator(books)

	alloc, err := Allocate(books[1], shares, acc)
	if err != nil {
		t.Fatal(err)
	}
	if !alloc.Skipped {
		t.Error("gate closed on a non-lending vendor, want skipped")
	}
	if len(acc.Updates()) != 0 {
		t.Errorf("skipped allocation produced %d updates, want none", len(acc.Updates()))
	}
}

func TestAllocateLendingVendor(t *testing.T) {
	// A lending vendor with the gate off distributes the interest it
	// collected, not the in/out difference.
	books, shares := vendorBooks(true, false)
	books[1].Payload[MetricInvested] = INR(50000)
	books[1].Payload[MetricReturned] = INR(1200)
	acc := NewAccumulator(books)

	alloc, err := Allocate(books[1], shares, acc)
	if err != nil {
		t.Fatal(err)
	}
	if !alloc.Returns.Equal(INR(1200)) {
		t.Errorf("returns = %s, want %s", alloc.Returns, INR(1200))
	}
	if !alloc.MemberShare.Equal(INR(300)) {
		t.Errorf("member share = %s, want %s", alloc.MemberShare, INR(300))
	}
}

func TestAllocateNoParticipants(t *testing.T) {
	books, shares := vendorBooks(false, true)
	for i := range shares {
		shares[i].Active = false
	}
	books[1].Payload[MetricReturned] = INR(9000)
	acc := NewAccumulator(books)

	alloc, err := Allocate(books[1], shares, acc)
	if err != nil {
		t.Fatal(err)
	}
	if !alloc.MemberShare.IsZero() || !alloc.Offset.IsZero() {
		t.Errorf("share/offset = %s/%s, want zero with nobody opted in", alloc.MemberShare, alloc.Offset)
	}
}

func TestAllocateNotAVendor(t *testing.T) {
	acc := NewAccumulator(testBooks())
	if _, err := Allocate(NewPassbook("pb-alice", "alice", KindMember), nil, acc); err == nil {
		t.Error("allocating on a member passbook, want error")
	}
}

// The rounding remainder is kept, not redistributed: the books may drift from
// the exact split by at most half a unit per participating member.
func TestAllocateRounding(t *testing.T) {
	books, shares := vendorBooks(false, true)
	books[1].Payload[MetricReturned] = INR(100) // 100/4 = 25, exact
	acc := NewAccumulator(books)
	alloc, err := Allocate(books[1], shares, acc)
	if err != nil {
		t.Fatal(err)
	}
	distributed := alloc.MemberShare.MulInt(alloc.Included)
	drift := alloc.Returns.Sub(distributed).Abs()
	if limit := INR(0.5).MulInt(alloc.Included); drift.GreaterThan(limit) {
		t.Errorf("rounding drift %s exceeds %s", drift, limit)
	}
}
