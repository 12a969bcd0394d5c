package clubbook

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTransactions(t *testing.T) {
	jsonl := `{"id":"t2","type":"withdrawal","to":"alice","currency":"INR","amount":400,"on":"2024-02-05","seq":2}

{"id":"t1","type":"deposit","to":"alice","currency":"INR","amount":1000,"on":"2024-01-05","seq":1}
{"id":"t3","type":"transfer","from":"bob","to":"alice","currency":"INR","amount":50.25,"on":"2024-02-05","seq":3,"note":"lunch"}
`
	txs, err := DecodeTransactions(strings.NewReader(jsonl))
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 3 {
		t.Fatalf("len(txs) = %d, want 3 (empty lines skipped)", len(txs))
	}
	// Canonical order: date first, sequence second.
	for i, want := range []string{"t1", "t2", "t3"} {
		if txs[i].ID != want {
			t.Errorf("txs[%d].ID = %s, want %s", i, txs[i].ID, want)
		}
	}
	if !txs[2].Amount.Equal(INR(50.25)) {
		t.Errorf("t3 amount = %s, want %s", txs[2].Amount, INR(50.25))
	}
	if txs[2].Note != "lunch" {
		t.Errorf("t3 note = %q, want %q", txs[2].Note, "lunch")
	}
}

func TestDecodeBadLine(t *testing.T) {
	if _, err := DecodeTransactions(strings.NewReader("not json\n")); err == nil {
		t.Error("decoding garbage, want error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []Transaction{
		{ID: "t1", Type: TxDeposit, To: "alice", Amount: INR(1000), On: MustParse("2024-01-05"), Seq: 1},
		{ID: "t2", Type: TxLoanTaken, From: "club", To: "bob", Amount: INR(2500.50), On: MustParse("2024-02-01"), Seq: 2, Method: "cash"},
	}
	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, in); err != nil {
		t.Fatal(err)
	}

	out, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range in {
		got, want := out[i], in[i]
		if got.ID != want.ID || got.Type != want.Type || got.From != want.From ||
			got.To != want.To || got.On != want.On || got.Seq != want.Seq ||
			got.Method != want.Method || !got.Amount.Equal(want.Amount) {
			t.Errorf("round trip changed transaction %d:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestEncodeFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeTransaction(&buf, Transaction{
		ID: "t1", Type: TxDeposit, To: "alice", Amount: INR(1000), On: MustParse("2024-01-05"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"t1","type":"deposit","to":"alice","currency":"INR","amount":1000,"on":"2024-01-05"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("encoded line:\n got %s\nwant %s", got, want)
	}
}
