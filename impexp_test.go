package clubbook

import (
	"strings"
	"testing"
)

const legacyDump = `{
  "accounts": [
    {"id": "club", "type": "CLUB", "passbookId": "pb-club"},
    {"id": "alice", "type": "MEMBER", "passbookId": "pb-alice",
     "passbook": {"totalDepositAmount": "1,000", "accountBalance": 600}},
    {"id": "acme", "type": "VENDOR", "lendingVendor": true}
  ],
  "transactions": [
    {"id": "t1", "transactionType": "DEPOSIT", "toId": "alice",
     "transactionAmount": 1000, "transactionDate": "2020-05-01", "transactionMethod": "cash"},
    {"id": "t2", "transactionType": "WITHDRAW", "toId": "alice",
     "transactionAmount": "1,400.50", "transactionDate": "2020-06-01T00:00:00Z"},
    {"id": "t3", "transactionType": "SOMETHING_OLD", "toId": "alice",
     "transactionAmount": 5, "transactionDate": "2020-07-01"}
  ],
  "profitShares": [
    {"vendorId": "acme", "memberId": "alice", "passbookId": "pb-alice",
     "active": true, "accountActive": true}
  ]
}`

func TestImportLegacy(t *testing.T) {
	imp, err := ImportLegacy(strings.NewReader(legacyDump), "INR")
	if err != nil {
		t.Fatal(err)
	}

	if len(imp.Passbooks) != 3 {
		t.Fatalf("len(Passbooks) = %d, want 3", len(imp.Passbooks))
	}
	club, alice, acme := imp.Passbooks[0], imp.Passbooks[1], imp.Passbooks[2]
	if club.Kind != KindClub || club.ID != "pb-club" {
		t.Errorf("club passbook = %+v", club)
	}
	// Payload amounts come both as numbers and as comma-grouped strings.
	if !alice.Get(MetricDeposits).Equal(INR(1000)) || !alice.Get(MetricBalance).Equal(INR(600)) {
		t.Errorf("alice payload not imported: %v", alice.Payload)
	}
	if acme.Kind != KindVendor || !acme.Lending {
		t.Errorf("acme passbook = %+v, want lending vendor", acme)
	}
	if acme.ID != "pb-acme" {
		t.Errorf("acme passbook id = %q, want the derived pb-acme", acme.ID)
	}

	if len(imp.Transactions) != 3 {
		t.Fatalf("len(Transactions) = %d, want 3", len(imp.Transactions))
	}
	t1, t2, t3 := imp.Transactions[0], imp.Transactions[1], imp.Transactions[2]
	if t1.Type != TxDeposit || !t1.Amount.Equal(INR(1000)) || t1.Method != "cash" {
		t.Errorf("t1 = %+v", t1)
	}
	// String amounts come with thousands separators in some dumps.
	if t2.Type != TxWithdrawal || !t2.Amount.Equal(INR(1400.50)) {
		t.Errorf("t2 = %+v, want withdrawal of 1400.50", t2)
	}
	if t2.On != MustParse("2020-06-01") {
		t.Errorf("t2 date = %s, want 2020-06-01", t2.On)
	}
	// Unknown labels survive verbatim so a replay can skip and report them.
	if t3.Type != "SOMETHING_OLD" {
		t.Errorf("t3 type = %q, want the legacy label kept", t3.Type)
	}
	// Dump order becomes the sequence, so replays keep the original order.
	for i, tx := range imp.Transactions {
		if tx.Seq != int64(i) {
			t.Errorf("transaction %d has seq %d", i, tx.Seq)
		}
	}

	if len(imp.ProfitShares) != 1 {
		t.Fatalf("len(ProfitShares) = %d, want 1", len(imp.ProfitShares))
	}
	ps := imp.ProfitShares[0]
	if ps.VendorID != "acme" || ps.MemberID != "alice" || !ps.Active || !ps.AccountActive {
		t.Errorf("profit share = %+v", ps)
	}
}

func TestImportLegacyWithoutShares(t *testing.T) {
	dump := `{"accounts": [{"id": "club", "type": "CLUB"}], "transactions": [
		{"id": "t", "transactionType": "DEPOSIT", "transactionAmount": 5, "transactionDate": "2020-05-01"}]}`
	imp, err := ImportLegacy(strings.NewReader(dump), "INR")
	if err != nil {
		t.Fatal(err)
	}
	if len(imp.ProfitShares) != 0 {
		t.Errorf("len(ProfitShares) = %d, want 0", len(imp.ProfitShares))
	}
}

func TestImportLegacyErrors(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{"not json", "garbage"},
		{"unknown account kind", `{"accounts": [{"id": "x", "type": "ALIEN"}], "transactions": []}`},
		{"unreadable amount", `{"accounts": [{"id": "club", "type": "CLUB"}], "transactions": [
			{"id": "t", "transactionType": "DEPOSIT", "transactionAmount": "??", "transactionDate": "2020-05-01"}]}`},
		{"bad date", `{"accounts": [{"id": "club", "type": "CLUB"}], "transactions": [
			{"id": "t", "transactionType": "DEPOSIT", "transactionAmount": 5, "transactionDate": "not-a-date"}]}`},
		{"unreadable passbook amount", `{"accounts": [{"id": "x", "type": "MEMBER",
			"passbook": {"totalDepositAmount": "??"}}], "transactions": [
			{"id": "t", "transactionType": "DEPOSIT", "transactionAmount": 5, "transactionDate": "2020-05-01"}]}`},
		{"passbook amount of the wrong shape", `{"accounts": [{"id": "x", "type": "MEMBER",
			"passbook": {"totalDepositAmount": true}}], "transactions": [
			{"id": "t", "transactionType": "DEPOSIT", "transactionAmount": 5, "transactionDate": "2020-05-01"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportLegacy(strings.NewReader(tt.dump), "INR"); err == nil {
				t.Error("imported a broken dump, want error")
			}
		})
	}
}
