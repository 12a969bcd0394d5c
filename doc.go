// Package clubbook tracks a club's finances as per-account passbooks that
// always reflect the complete history of posted transactions.
//
// The core functionalities include:
//   - Rule-driven Propagation: A static rule table maps each transaction
//     type to the field deltas it applies to the from-account, the
//     to-account, and the club passbook; a single posting and a full replay
//     share the same path.
//   - Update Accumulation: All passbook mutation is merged into an
//     in-memory accumulator and committed in one atomic batch, so N
//     transactions touching the same passbook collapse into one consistent
//     final value and an interrupted pass changes nothing.
//   - Withdrawal Splitting: Withdrawals are decomposed into a principal and
//     a profit portion against the cumulative deposits and withdrawals to
//     date, with reversals inverting the recorded split rather than
//     re-deriving it.
//   - Loan Interest: Accrued interest on outstanding principal under a
//     monthly-rate model, with a configurable cut-over between whole-month
//     and day-proportional billing, and loan periods reconstructed on
//     demand from the transaction log.
//   - Profit Sharing: Pro-rata distribution of a vendor's net return across
//     opted-in members, with opted-out members' would-be shares tracked as
//     offset.
//   - Recalculation: A full, from-zero, idempotent replay of the
//     transaction history that rebuilds every passbook.
//
// This package serves as the foundational logic for the `cbk` command-line
// tool; storage lives behind the Store interface.
package clubbook
