package clubbook

// INR is a helper for tests to create rupee money from a const.
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for tests to create money with no currency set.
func NO(v float64) Money { return M(v, "") }

// testBooks returns a small club: the club passbook, two members, one vendor.
func testBooks() []Passbook {
	return []Passbook{
		NewPassbook("pb-club", "club", KindClub),
		NewPassbook("pb-alice", "alice", KindMember),
		NewPassbook("pb-bob", "bob", KindMember),
		NewPassbook("pb-acme", "acme", KindVendor),
	}
}

// tx is a compact transaction literal for test tables.
func tx(typ TxType, from, to string, amount Money, on string) Transaction {
	return Transaction{
		ID:     string(typ) + "/" + from + ">" + to + "@" + on,
		Type:   typ,
		From:   from,
		To:     to,
		Amount: amount,
		On:     MustParse(on),
	}
}
