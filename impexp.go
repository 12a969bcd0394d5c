package clubbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file imports the club's legacy bookkeeping dump: one JSON document
// holding accounts (with embedded passbooks), transactions, and profit-share
// rows. The dump's field names and type labels predate this engine, so the
// importer maps them onto the current model.

// LegacyImport is the extracted content of a legacy dump.
type LegacyImport struct {
	Passbooks    []Passbook
	Transactions []Transaction
	ProfitShares []ProfitShare
}

// legacy transaction-type labels, as the old system spelled them.
var legacyTypes = map[string]TxType{
	"DEPOSIT":        TxDeposit,
	"WITHDRAW":       TxWithdrawal,
	"TRANSFER":       TxTransfer,
	"LOAN_TAKEN":     TxLoanTaken,
	"LOAN_REPAY":     TxLoanRepay,
	"LOAN_INTEREST":  TxLoanInterest,
	"VENDOR_INVEST":  TxVendorInvest,
	"VENDOR_RETURNS": TxVendorReturns,
	"REJOIN":         TxRejoin,
}

var legacyKinds = map[string]Kind{
	"MEMBER": KindMember,
	"VENDOR": KindVendor,
	"CLUB":   KindClub,
}

// ImportLegacy parses a legacy dump and converts it. Unknown transaction
// types are kept under their legacy label so the rule table can skip and
// report them instead of losing the row silently.
func ImportLegacy(r io.Reader, currency string) (*LegacyImport, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("parsing legacy dump: %w", err)
	}

	imp := &LegacyImport{}

	jaccounts, err := jsonpath.Get("$.accounts[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("legacy dump has no accounts: %w", err)
	}
	for _, ja := range jaccounts.([]any) {
		pb, err := legacyPassbook(ja, currency)
		if err != nil {
			return nil, err
		}
		imp.Passbooks = append(imp.Passbooks, pb)
	}

	jtxs, err := jsonpath.Get("$.transactions[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("legacy dump has no transactions: %w", err)
	}
	for i, jt := range jtxs.([]any) {
		tx, err := legacyTransaction(jt, currency)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		tx.Seq = int64(i)
		imp.Transactions = append(imp.Transactions, tx)
	}

	// Profit shares are optional in older dumps.
	if jshares, err := jsonpath.Get("$.profitShares[*]", jobj); err == nil {
		for _, js := range jshares.([]any) {
			imp.ProfitShares = append(imp.ProfitShares, legacyShare(js))
		}
	}

	return imp, nil
}

func legacyPassbook(ja any, currency string) (Passbook, error) {
	m, ok := ja.(map[string]any)
	if !ok {
		return Passbook{}, fmt.Errorf("account entry is not an object")
	}
	kind, ok := legacyKinds[jstring(m, "type")]
	if !ok {
		return Passbook{}, fmt.Errorf("account %q has unknown type %q", jstring(m, "id"), jstring(m, "type"))
	}
	pb := NewPassbook(jstring(m, "passbookId"), jstring(m, "id"), kind)
	if pb.ID == "" {
		pb.ID = "pb-" + pb.AccountID
	}
	pb.Lending = jbool(m, "lendingVendor")
	pb.CalcReturns = jbool(m, "calcReturns")
	if payload, ok := m["passbook"].(map[string]any); ok {
		for k, v := range payload {
			d, err := legacyAmount(v)
			if err != nil {
				return Passbook{}, fmt.Errorf("account %q passbook field %q: %w", pb.AccountID, k, err)
			}
			pb.Payload[Metric(k)] = M(d, currency)
		}
	}
	return pb, nil
}

// legacyAmount reads a dump amount. The old export usually writes numbers
// but sometimes comma-grouped strings like "1,20,000.50".
func legacyAmount(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(x, ",", ""))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("unreadable amount %q: %w", x, err)
		}
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("amount is neither a number nor a string")
}

func legacyTransaction(jt any, currency string) (Transaction, error) {
	m, ok := jt.(map[string]any)
	if !ok {
		return Transaction{}, fmt.Errorf("entry is not an object")
	}
	on, err := ParseDate(jstring(m, "transactionDate"))
	if err != nil {
		return Transaction{}, err
	}
	d, err := legacyAmount(m["transactionAmount"])
	if err != nil {
		return Transaction{}, err
	}
	return legacyTx(m, M(d, currency), on), nil
}

func legacyTx(m map[string]any, amount Money, on Date) Transaction {
	txType, ok := legacyTypes[jstring(m, "transactionType")]
	if !ok {
		txType = TxType(jstring(m, "transactionType"))
	}
	return Transaction{
		ID:     jstring(m, "id"),
		Type:   txType,
		From:   jstring(m, "fromId"),
		To:     jstring(m, "toId"),
		Amount: amount,
		On:     on,
		Method: jstring(m, "transactionMethod"),
		Note:   jstring(m, "note"),
	}
}

func legacyShare(js any) ProfitShare {
	m, _ := js.(map[string]any)
	return ProfitShare{
		VendorID:      jstring(m, "vendorId"),
		MemberID:      jstring(m, "memberId"),
		PassbookID:    jstring(m, "passbookId"),
		Active:        jbool(m, "active"),
		AccountActive: jbool(m, "accountActive"),
	}
}

func jstring(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func jbool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
