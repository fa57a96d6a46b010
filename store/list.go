package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/shopspring/decimal"
)

const itemColumns = `id, title, auction, lot, status, currency,
    planned_max_bid, target_price, suggested_price, purchase_price, refurb_cost,
    sale_price, sale_fees, shipping_cost,
    won_date, list_date, list_channel, sale_date,
    multi_piece, pieces_total, pieces_remaining`

// ListItems returns the stored items, in ledger order.
func ListItems(ctx context.Context, db *sql.DB) ([]*flip.Item, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*flip.Item
	index := make(map[string]*flip.Item)
	currencies := make(map[string]string)
	for rows.Next() {
		it, cur, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
		index[it.ID] = it
		currencies[it.ID] = cur
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	if err := loadDetails(ctx, db, index, currencies); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns a stored item, or nil if there is none with this id.
func GetItem(ctx context.Context, db *sql.DB, id string) (*flip.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, cur, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if err := loadDetails(ctx, db, map[string]*flip.Item{id: it}, map[string]string{id: cur}); err != nil {
		return nil, err
	}
	return it, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*flip.Item, string, error) {
	var (
		it                                          flip.Item
		status, cur                                 string
		maxBid, target, suggested, purchase, refurb sql.NullString
		sale, fees, shipping                        sql.NullString
		wonDate, listDate, saleDate                 string
	)
	err := row.Scan(&it.ID, &it.Title, &it.Auction, &it.LotNumber, &status, &cur,
		&maxBid, &target, &suggested, &purchase, &refurb,
		&sale, &fees, &shipping,
		&wonDate, &listDate, &it.ListChannel, &saleDate,
		&it.MultiPiece, &it.PiecesTotal, &it.PiecesRemaining)
	if err != nil {
		return nil, "", err
	}
	if it.Status, err = flip.ParseStatus(status); err != nil {
		return nil, "", err
	}
	for _, f := range []struct {
		dst *flip.Amount
		src sql.NullString
	}{
		{&it.PlannedMaxBid, maxBid}, {&it.TargetPrice, target}, {&it.SuggestedPrice, suggested},
		{&it.PurchasePrice, purchase}, {&it.RefurbCost, refurb},
		{&it.SalePrice, sale}, {&it.SaleFees, fees}, {&it.ShippingCost, shipping},
	} {
		if *f.dst, err = toAmount(f.src, cur); err != nil {
			return nil, "", err
		}
	}
	for _, f := range []struct {
		dst *date.Date
		src string
	}{{&it.WonDate, wonDate}, {&it.ListDate, listDate}, {&it.SaleDate, saleDate}} {
		if *f.dst, err = toDate(f.src); err != nil {
			return nil, "", err
		}
	}
	return &it, cur, nil
}

// loadDetails loads the expenses, piece sales and shares of the indexed items.
func loadDetails(ctx context.Context, db *sql.DB, index map[string]*flip.Item, currencies map[string]string) error {
	rows, err := db.QueryContext(ctx, `SELECT item_id, date, category, description, amount FROM expenses ORDER BY id`)
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}
	for rows.Next() {
		var id, on, amt string
		var e flip.Expense
		if err := rows.Scan(&id, &on, &e.Category, &e.Description, &amt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning expense: %w", err)
		}
		it, ok := index[id]
		if !ok {
			continue
		}
		if e.Date, err = toDate(on); err != nil {
			rows.Close()
			return err
		}
		if e.Amount, err = toMoney(amt, currencies[id]); err != nil {
			rows.Close()
			return err
		}
		it.Expenses = append(it.Expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating expenses: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT item_id, date, pieces, price, fees, shipping, channel FROM piece_sales ORDER BY id`)
	if err != nil {
		return fmt.Errorf("listing piece sales: %w", err)
	}
	for rows.Next() {
		var id, on, price, fees, shipping string
		var s flip.PieceSale
		if err := rows.Scan(&id, &on, &s.Pieces, &price, &fees, &shipping, &s.Channel); err != nil {
			rows.Close()
			return fmt.Errorf("scanning piece sale: %w", err)
		}
		it, ok := index[id]
		if !ok {
			continue
		}
		cur := currencies[id]
		if s.Date, err = toDate(on); err == nil {
			if s.Price, err = toMoney(price, cur); err == nil {
				if s.Fees, err = toMoney(fees, cur); err == nil {
					s.Shipping, err = toMoney(shipping, cur)
				}
			}
		}
		if err != nil {
			rows.Close()
			return err
		}
		it.PieceSales = append(it.PieceSales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating piece sales: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT item_id, partner, pct FROM shares ORDER BY item_id, position`)
	if err != nil {
		return fmt.Errorf("listing shares: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var pct float64
		var s flip.Share
		if err := rows.Scan(&id, &s.Partner, &pct); err != nil {
			return fmt.Errorf("scanning share: %w", err)
		}
		s.Pct = flip.Percent(pct)
		if it, ok := index[id]; ok {
			it.Shares = append(it.Shares, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating shares: %w", err)
	}
	return nil
}

func toAmount(s sql.NullString, cur string) (flip.Amount, error) {
	if !s.Valid {
		return flip.Amount{}, nil
	}
	m, err := toMoney(s.String, cur)
	if err != nil {
		return flip.Amount{}, err
	}
	return flip.Some(m), nil
}

func toMoney(s, cur string) (flip.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return flip.Money{}, fmt.Errorf("invalid stored amount %q: %w", s, err)
	}
	return flip.M(d, cur), nil
}

func toDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}
