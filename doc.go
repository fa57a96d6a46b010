// Package flip tracks items bought at auction and resold, and computes their
// profitability. It is designed to be local-first and auditable: every fact
// is a dated transaction in a human-readable ledger.
//
// The core functionalities include:
//   - Financial Model: pure functions for gross and net profit, ROI, break-even
//     price and partner shares. Unknown inputs give unknown results, never zero.
//   - Item Valuation: the Item entity, with itemized expenses and multi-piece
//     lots whose cost is prorated over the pieces sold.
//   - Portfolio Aggregation: totals, averages and counts per lifecycle status.
//   - Partner Allocation: the split of an item's net profit between partners.
//   - Ledger: the JSONL record of watches, wins, refurbishments, listings and
//     sales, replayed into items.
//   - Reports: partner earnings, profit analysis and cash flow.
//
// This package serves as the foundational logic for the `flipctl` command-line tool.
package flip
