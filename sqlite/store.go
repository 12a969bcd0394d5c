// Package sqlite persists passbooks, transactions, and profit shares in a
// SQLite database, implementing the engine's Store contract. The bulk
// passbook apply runs in a single SQL transaction, which gives the engine
// its all-or-nothing commit.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/clubfund/clubbook"
)

// Store is a SQLite-backed clubbook.Store.
type Store struct {
	db *sql.DB
}

var _ clubbook.Store = (*Store)(nil)

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: the engine is a single sequential writer, and the
	// foreign-key pragma below is per-connection.
	db.SetMaxOpenConns(1)

	// WAL mode for better read performance while a pass is committing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS passbooks (
			id           TEXT PRIMARY KEY,
			account_id   TEXT NOT NULL UNIQUE,
			kind         TEXT NOT NULL,
			lending      INTEGER NOT NULL DEFAULT 0,
			calc_returns INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS passbook_metrics (
			passbook_id TEXT NOT NULL REFERENCES passbooks(id),
			metric      TEXT NOT NULL,
			amount      TEXT NOT NULL,
			currency    TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (passbook_id, metric)
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			seq      INTEGER PRIMARY KEY AUTOINCREMENT,
			id       TEXT NOT NULL UNIQUE,
			type     TEXT NOT NULL,
			from_id  TEXT,
			to_id    TEXT,
			amount   TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT '',
			on_date  TEXT NOT NULL,
			method   TEXT,
			note     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_order ON transactions(on_date, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_from ON transactions(from_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_to ON transactions(to_id)`,

		`CREATE TABLE IF NOT EXISTS profit_shares (
			vendor_id      TEXT NOT NULL,
			member_id      TEXT NOT NULL,
			passbook_id    TEXT NOT NULL,
			active         INTEGER NOT NULL DEFAULT 1,
			account_active INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (vendor_id, member_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// CreatePassbook inserts a new passbook alongside its owning account.
func (s *Store) CreatePassbook(pb clubbook.Passbook) error {
	_, err := s.db.Exec(
		`INSERT INTO passbooks (id, account_id, kind, lending, calc_returns) VALUES (?, ?, ?, ?, ?)`,
		pb.ID, pb.AccountID, string(pb.Kind), boolInt(pb.Lending), boolInt(pb.CalcReturns))
	if err != nil {
		return fmt.Errorf("create passbook %s: %w", pb.ID, err)
	}
	for metric, amount := range pb.Payload {
		if _, err := s.db.Exec(
			`INSERT INTO passbook_metrics (passbook_id, metric, amount, currency) VALUES (?, ?, ?, ?)`,
			pb.ID, string(metric), amount.Decimal().String(), amount.Currency()); err != nil {
			return fmt.Errorf("create passbook %s metric %s: %w", pb.ID, metric, err)
		}
	}
	return nil
}

// ListPassbooks returns every passbook with its account linkage and payload.
func (s *Store) ListPassbooks() ([]clubbook.Passbook, error) {
	rows, err := s.db.Query(`SELECT id, account_id, kind, lending, calc_returns FROM passbooks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list passbooks: %w", err)
	}
	defer rows.Close()

	var passbooks []clubbook.Passbook
	index := map[string]int{}
	for rows.Next() {
		var pb clubbook.Passbook
		var kind string
		var lending, calcReturns int
		if err := rows.Scan(&pb.ID, &pb.AccountID, &kind, &lending, &calcReturns); err != nil {
			return nil, fmt.Errorf("scan passbook: %w", err)
		}
		pb.Kind = clubbook.Kind(kind)
		pb.Lending = lending != 0
		pb.CalcReturns = calcReturns != 0
		pb.Payload = map[clubbook.Metric]clubbook.Money{}
		index[pb.ID] = len(passbooks)
		passbooks = append(passbooks, pb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list passbooks: %w", err)
	}

	mrows, err := s.db.Query(`SELECT passbook_id, metric, amount, currency FROM passbook_metrics`)
	if err != nil {
		return nil, fmt.Errorf("list passbook metrics: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var id, metric, amount, currency string
		if err := mrows.Scan(&id, &metric, &amount, &currency); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue // metric row for a deleted passbook
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("passbook %s metric %s has unreadable amount %q: %w", id, metric, amount, err)
		}
		passbooks[i].Payload[clubbook.Metric(metric)] = clubbook.M(d, currency)
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("list passbook metrics: %w", err)
	}
	return passbooks, nil
}

// CommitPassbookUpdates applies the batch inside one SQL transaction:
// either every update lands or none does.
func (s *Store) CommitPassbookUpdates(updates []clubbook.PassbookUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	if err := applyUpdates(tx, updates); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit passbook updates: %w", err)
	}
	return nil
}

func applyUpdates(tx *sql.Tx, updates []clubbook.PassbookUpdate) error {
	for _, u := range updates {
		if u.Reset {
			if _, err := tx.Exec(`DELETE FROM passbook_metrics WHERE passbook_id = ?`, u.PassbookID); err != nil {
				return fmt.Errorf("reset passbook %s: %w", u.PassbookID, err)
			}
		}
		for metric, amount := range u.Values {
			if _, err := tx.Exec(
				`INSERT INTO passbook_metrics (passbook_id, metric, amount, currency) VALUES (?, ?, ?, ?)
				 ON CONFLICT (passbook_id, metric) DO UPDATE SET amount = excluded.amount, currency = excluded.currency`,
				u.PassbookID, string(metric), amount.Decimal().String(), amount.Currency()); err != nil {
				return fmt.Errorf("update passbook %s metric %s: %w", u.PassbookID, metric, err)
			}
		}
	}
	return nil
}

// AppendTransaction records a posted transaction and assigns its sequence.
// The passbook updates ride the same SQL transaction as the insert, so a
// failed update leaves no orphaned row in the log.
func (s *Store) AppendTransaction(tx clubbook.Transaction, updates []clubbook.PassbookUpdate) (clubbook.Transaction, error) {
	stx, err := s.db.Begin()
	if err != nil {
		return tx, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}
	defer stx.Rollback()

	res, err := stx.Exec(
		`INSERT INTO transactions (id, type, from_id, to_id, amount, currency, on_date, method, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.From, tx.To,
		tx.Amount.Decimal().String(), tx.Amount.Currency(), tx.On.String(), tx.Method, tx.Note)
	if err != nil {
		return tx, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return tx, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}
	if err := applyUpdates(stx, updates); err != nil {
		return tx, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}
	if err := stx.Commit(); err != nil {
		return tx, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}
	tx.Seq = seq
	return tx, nil
}

// ListTransactions returns transactions in canonical processing order,
// filtered to one account when accountID is non-empty.
func (s *Store) ListTransactions(accountID string) ([]clubbook.Transaction, error) {
	query := `SELECT seq, id, type, from_id, to_id, amount, currency, on_date, method, note
		FROM transactions`
	args := []any{}
	if accountID != "" {
		query += ` WHERE from_id = ? OR to_id = ?`
		args = append(args, accountID, accountID)
	}
	query += ` ORDER BY on_date, seq`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []clubbook.Transaction
	for rows.Next() {
		var tx clubbook.Transaction
		var typ, amount, currency, onDate string
		var from, to, method, note sql.NullString
		if err := rows.Scan(&tx.Seq, &tx.ID, &typ, &from, &to, &amount, &currency, &onDate, &method, &note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s has unreadable amount %q: %w", tx.ID, amount, err)
		}
		on, err := clubbook.ParseDate(onDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		tx.Type = clubbook.TxType(typ)
		tx.From = from.String
		tx.To = to.String
		tx.Amount = clubbook.M(d, currency)
		tx.On = on
		tx.Method = method.String
		tx.Note = note.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// UpsertProfitShare records a member's opt-in/opt-out for a vendor.
func (s *Store) UpsertProfitShare(ps clubbook.ProfitShare) error {
	_, err := s.db.Exec(
		`INSERT INTO profit_shares (vendor_id, member_id, passbook_id, active, account_active)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (vendor_id, member_id) DO UPDATE
		 SET passbook_id = excluded.passbook_id, active = excluded.active, account_active = excluded.account_active`,
		ps.VendorID, ps.MemberID, ps.PassbookID, boolInt(ps.Active), boolInt(ps.AccountActive))
	if err != nil {
		return fmt.Errorf("upsert profit share %s/%s: %w", ps.VendorID, ps.MemberID, err)
	}
	return nil
}

// ListProfitShares returns the profit-share rows for one vendor.
func (s *Store) ListProfitShares(vendorID string) ([]clubbook.ProfitShare, error) {
	rows, err := s.db.Query(
		`SELECT vendor_id, member_id, passbook_id, active, account_active
		 FROM profit_shares WHERE vendor_id = ? ORDER BY member_id`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list profit shares: %w", err)
	}
	defer rows.Close()

	var shares []clubbook.ProfitShare
	for rows.Next() {
		var ps clubbook.ProfitShare
		var active, accountActive int
		if err := rows.Scan(&ps.VendorID, &ps.MemberID, &ps.PassbookID, &active, &accountActive); err != nil {
			return nil, fmt.Errorf("scan profit share: %w", err)
		}
		ps.Active = active != 0
		ps.AccountActive = accountActive != 0
		shares = append(shares, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profit shares: %w", err)
	}
	return shares, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
