package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

// SaveItems replaces the stored items with items, in a single transaction.
func SaveItems(ctx context.Context, db *sql.DB, items []*flip.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"shares", "piece_sales", "expenses", "items"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, it := range items {
		if err := insertItem(ctx, tx, i, it); err != nil {
			return fmt.Errorf("saving item %q: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, position int, it *flip.Item) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO items (id, title, auction, lot, status, currency,
		    planned_max_bid, target_price, suggested_price, purchase_price, refurb_cost,
		    sale_price, sale_fees, shipping_cost,
		    won_date, list_date, list_channel, sale_date,
		    multi_piece, pieces_total, pieces_remaining, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Auction, it.LotNumber, it.Status.String(), currency(it),
		amount(it.PlannedMaxBid), amount(it.TargetPrice), amount(it.SuggestedPrice),
		amount(it.PurchasePrice), amount(it.RefurbCost),
		amount(it.SalePrice), amount(it.SaleFees), amount(it.ShippingCost),
		day(it.WonDate), day(it.ListDate), it.ListChannel, day(it.SaleDate),
		it.MultiPiece, it.PiecesTotal, it.PiecesRemaining, position,
	)
	if err != nil {
		return err
	}
	for _, e := range it.Expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (item_id, date, category, description, amount) VALUES (?, ?, ?, ?, ?)`,
			it.ID, day(e.Date), e.Category, e.Description, e.Amount.Decimal().String(),
		)
		if err != nil {
			return err
		}
	}
	for _, s := range it.PieceSales {
		if err := insertPieceSale(ctx, tx, it.ID, s); err != nil {
			return err
		}
	}
	for i, s := range it.Shares {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shares (item_id, partner, pct, position) VALUES (?, ?, ?, ?)`,
			it.ID, s.Partner, float64(s.Pct), i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPieceSale(ctx context.Context, tx *sql.Tx, itemID string, s flip.PieceSale) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO piece_sales (item_id, date, pieces, price, fees, shipping, channel) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		itemID, day(s.Date), s.Pieces, s.Price.Decimal().String(), s.Fees.Decimal().String(), s.Shipping.Decimal().String(), s.Channel,
	)
	return err
}

// RecordPieceSale records the sale of pieces of a lot, checking and decrementing
// the remaining pieces in a single transaction. Selling more pieces than remain
// is an error wrapping flip.ErrInvalid and changes nothing.
func RecordPieceSale(ctx context.Context, db *sql.DB, itemID string, s flip.PieceSale) error {
	if s.Pieces <= 0 {
		return fmt.Errorf("%w: pieces must be positive, got %d", flip.ErrInvalid, s.Pieces)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		multi            bool
		remaining        int
		fees, shipping   sql.NullString
		status, currency string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT multi_piece, pieces_remaining, sale_fees, shipping_cost, status, currency FROM items WHERE id = ?`, itemID,
	).Scan(&multi, &remaining, &fees, &shipping, &status, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: item %q not found", flip.ErrInvalid, itemID)
	}
	if err != nil {
		return fmt.Errorf("checking remaining pieces: %w", err)
	}
	if !multi {
		return fmt.Errorf("%w: item %q is not sold by the piece", flip.ErrInvalid, itemID)
	}
	if s.Pieces > remaining {
		return fmt.Errorf("%w: cannot sell %d pieces of %q, %d remaining", flip.ErrInvalid, s.Pieces, itemID, remaining)
	}

	remaining -= s.Pieces
	saleDate := ""
	if remaining == 0 {
		status = flip.Sold.String()
		saleDate = day(s.Date)
	}
	totalFees, err := add(fees, s.Fees)
	if err != nil {
		return fmt.Errorf("adding sale fees of %q: %w", itemID, err)
	}
	totalShipping, err := add(shipping, s.Shipping)
	if err != nil {
		return fmt.Errorf("adding shipping cost of %q: %w", itemID, err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE items SET pieces_remaining = ?, status = ?, sale_fees = ?, shipping_cost = ?,
		    sale_date = CASE WHEN ? = '' THEN sale_date ELSE ? END
		 WHERE id = ?`,
		remaining, status, totalFees, totalShipping, saleDate, saleDate, itemID,
	)
	if err != nil {
		return fmt.Errorf("updating remaining pieces: %w", err)
	}
	if err := insertPieceSale(ctx, tx, itemID, s); err != nil {
		return fmt.Errorf("recording piece sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing piece sale: %w", err)
	}
	return nil
}

// add adds m to a stored amount, an unknown amount counting as zero.
func add(stored sql.NullString, m flip.Money) (string, error) {
	if !stored.Valid {
		return m.Decimal().String(), nil
	}
	d, err := decimal.NewFromString(stored.String)
	if err != nil {
		return "", fmt.Errorf("invalid stored amount %q: %w", stored.String, err)
	}
	return d.Add(m.Decimal()).String(), nil
}

// amount returns the stored form of a, nil when unknown.
func amount(a flip.Amount) any {
	m, ok := a.Get()
	if !ok {
		return nil
	}
	return m.Decimal().String()
}

func day(d date.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// currency returns the currency of the first known amount of it.
func currency(it *flip.Item) string {
	for _, a := range []flip.Amount{it.PurchasePrice, it.PlannedMaxBid, it.TargetPrice, it.SuggestedPrice, it.SalePrice} {
		if m, ok := a.Get(); ok && m.Currency() != "" {
			return m.Currency()
		}
	}
	return ""
}
