package clubbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jtx is a specialized struct to read a transaction line, with the amount in
// two fields.
type jtx struct {
	ID       string          `json:"id"`
	Type     TxType          `json:"type"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	On       Date            `json:"on"`
	Seq      int64           `json:"seq"`
	Method   string          `json:"method"`
	Note     string          `json:"note"`
}

func (j jtx) transaction() Transaction {
	return Transaction{
		ID:     j.ID,
		Type:   j.Type,
		From:   j.From,
		To:     j.To,
		Amount: M(j.Amount, j.Currency),
		On:     j.On,
		Seq:    j.Seq,
		Method: j.Method,
		Note:   j.Note,
	}
}

// DecodeTransactions reads a stream of JSONL data, decodes each line into a
// transaction, and returns them sorted in canonical processing order.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue // Skip empty lines
		}
		var j jtx
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", line, string(raw), err)
		}
		txs = append(txs, j.transaction())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	sort.SliceStable(txs, func(i, k int) bool { return txs[i].Less(txs[k]) })
	return txs, nil
}

// EncodeTransaction appends a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encoding transaction %s: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
	}
	return nil
}

// EncodeTransactions writes transactions as JSONL in canonical order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, k int) bool { return sorted[i].Less(sorted[k]) })
	for _, tx := range sorted {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
