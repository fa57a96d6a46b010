package flip

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/etnz/flip/date"
)

// DefaultCurrency is the currency of a ledger without an init transaction.
const DefaultCurrency = "USD"

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological order of transactions.
// Transactions are not validated, see Validate.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// Validate checks a transaction against the state of the ledger on the
// transaction date and fills in defaults (date, item id). A back-dated
// transaction must also keep every later transaction valid. It returns the
// validated transaction, ready to be appended.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	v, err := tx.Validate(l)
	if err != nil {
		return v, fmt.Errorf("invalid %s transaction on %v: %w", v.What(), v.When(), err)
	}
	next := &Ledger{transactions: slices.Clone(l.transactions)}
	next.Append(v)
	if err := next.Check(); err != nil {
		return v, fmt.Errorf("%s transaction on %v conflicts with later transactions: %w", v.What(), v.When(), err)
	}
	return v, nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over the transactions accepted by all filters, in chronological order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByItem is a Transactions filter keeping transactions on the given item.
func ByItem(id string) func(Transaction) bool {
	return func(tx Transaction) bool {
		it, ok := tx.(interface{ item() string })
		return ok && it.item() == id
	}
}

func (t itemCmd) item() string { return t.Item }

// InRange is a Transactions filter keeping transactions dated within r.
func InRange(r date.Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.When()) }
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// OldestTransactionDate returns the date of the earliest transaction, or a zero date.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction, or a zero date.
func (l *Ledger) NewestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// book is the state obtained by replaying transactions.
type book struct {
	currency string
	auctions map[string]Auction
	partners map[string]Partner
	items    map[string]*Item
	order    []string // item ids in declaration order
}

func newBook() *book {
	return &book{
		currency: DefaultCurrency,
		auctions: make(map[string]Auction),
		partners: make(map[string]Partner),
		items:    make(map[string]*Item),
	}
}

func (b *book) add(it *Item) {
	b.items[it.ID] = it
	b.order = append(b.order, it.ID)
}

// bookAsOf replays every transaction dated on or before on.
func (l *Ledger) bookAsOf(on date.Date) (*book, error) {
	b := newBook()
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			break
		}
		if err := tx.apply(b); err != nil {
			return nil, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
		}
	}
	return b, nil
}

// book replays the whole ledger.
func (l *Ledger) book() (*book, error) { return l.bookAsOf(l.NewestTransactionDate()) }

// Check replays the whole ledger and returns the first inconsistency.
func (l *Ledger) Check() error {
	_, err := l.book()
	return err
}

// Currency returns the currency of the ledger.
func (l *Ledger) Currency() string {
	for _, tx := range l.transactions {
		if i, ok := tx.(Init); ok {
			return i.Currency
		}
	}
	return DefaultCurrency
}

// Items replays the ledger and returns its items in the order they were watched.
func (l *Ledger) Items() ([]*Item, error) {
	b, err := l.book()
	if err != nil {
		return nil, err
	}
	items := make([]*Item, 0, len(b.order))
	for _, id := range b.order {
		items = append(items, b.items[id])
	}
	return items, nil
}

// Item replays the ledger and returns one item.
func (l *Ledger) Item(id string) (*Item, error) {
	b, err := l.book()
	if err != nil {
		return nil, err
	}
	it, ok := b.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %q not found", ErrInvalid, id)
	}
	return it, nil
}

// Auctions returns the declared auctions sorted by id.
func (l *Ledger) Auctions() []Auction {
	var auctions []Auction
	for _, tx := range l.transactions {
		if a, ok := tx.(Auction); ok {
			auctions = append(auctions, a)
		}
	}
	slices.SortFunc(auctions, func(a, b Auction) int { return cmp.Compare(a.ID, b.ID) })
	return auctions
}

// Partners returns the declared partner ids, sorted.
func (l *Ledger) Partners() []string {
	ids := make(map[string]bool)
	for _, tx := range l.transactions {
		if p, ok := tx.(Partner); ok {
			ids[p.ID] = true
		}
	}
	return slices.Sorted(maps.Keys(ids))
}
