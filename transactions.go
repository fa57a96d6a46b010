package flip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/flip/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdInit       CommandType = "init"
	CmdAuction    CommandType = "auction"
	CmdPartner    CommandType = "partner"
	CmdWatch      CommandType = "watch"
	CmdWin        CommandType = "win"
	CmdRefurb     CommandType = "refurb"
	CmdExpense    CommandType = "expense"
	CmdList       CommandType = "list"
	CmdSell       CommandType = "sell"
	CmdSellPieces CommandType = "sell-pieces"
	CmdShare      CommandType = "share"
	CmdSuggest    CommandType = "suggest"
)

// Transaction is a dated command recorded in the ledger. Replaying the
// transactions in order builds the state of every item.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "win", "sell").
	When() date.Date   // When returns the date on which the transaction occurred.
	// Validate checks the transaction against the ledger state on its date.
	// It returns the transaction with defaults filled in.
	Validate(ledger *Ledger) (Transaction, error)
	// apply updates the book with the transaction.
	apply(b *book) error
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction.
	Date    date.Date   `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo is a free note.
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() date.Date   { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// defaults sets the date to today if it's zero.
func (t *baseCmd) defaults() {
	if t.Date.IsZero() {
		t.Date = date.Today()
	}
}

// itemCmd is a component for transactions on an item.
type itemCmd struct {
	baseCmd
	Item string `json:"item"` // Item is the id of the item.
}

func (t itemCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("item", t.Item)
	return w.MarshalJSON()
}

// lookup returns the item, or an error if it was never watched.
func (t itemCmd) lookup(b *book) (*Item, error) {
	if t.Item == "" {
		return nil, errors.New("item id is missing")
	}
	it, ok := b.items[t.Item]
	if !ok {
		return nil, fmt.Errorf("%w: item %q not found", ErrInvalid, t.Item)
	}
	return it, nil
}

// validate runs the defaults and applies t on the ledger state as of its date.
func validate[T Transaction](ledger *Ledger, t T) (Transaction, error) {
	b, err := ledger.bookAsOf(t.When())
	if err != nil {
		return t, err
	}
	return t, t.apply(b)
}

func positive(name string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, name, d)
	}
	return nil
}

func notNegative(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative, got %s", ErrInvalid, name, d)
	}
	return nil
}

// --- Init Command ---

// Init sets the currency of the ledger. It must come before any item.
type Init struct {
	baseCmd
	Currency string `json:"currency"`
}

func NewInit(day date.Date, memo, currency string) Init {
	return Init{baseCmd: baseCmd{Command: CmdInit, Date: day, Memo: memo}, Currency: currency}
}

func (t Init) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("currency", t.Currency)
	return w.MarshalJSON()
}

func (t Init) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	t.Currency = strings.ToUpper(t.Currency)
	if money.GetCurrency(t.Currency) == nil {
		return t, fmt.Errorf("%w: unknown currency %q", ErrInvalid, t.Currency)
	}
	return validate(ledger, t)
}

func (t Init) apply(b *book) error {
	if len(b.items) > 0 {
		return fmt.Errorf("cannot change currency to %s, the ledger already has items in %s", t.Currency, b.currency)
	}
	b.currency = t.Currency
	return nil
}

// --- Auction Command ---

// Auction declares an auction, dated on the day it takes place.
type Auction struct {
	baseCmd
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
}

func NewAuction(day date.Date, memo, id, title, location, url string) Auction {
	return Auction{
		baseCmd: baseCmd{Command: CmdAuction, Date: day, Memo: memo},
		ID:      id, Title: title, Location: location, URL: url,
	}
}

func (t Auction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("id", t.ID)
	w.Append("title", t.Title)
	w.Optional("location", t.Location)
	w.Optional("url", t.URL)
	return w.MarshalJSON()
}

func (t Auction) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if t.ID == "" {
		return t, errors.New("auction id is missing")
	}
	if t.Title == "" {
		t.Title = t.ID
	}
	return validate(ledger, t)
}

func (t Auction) apply(b *book) error {
	if _, exists := b.auctions[t.ID]; exists {
		return fmt.Errorf("auction %q already declared", t.ID)
	}
	b.auctions[t.ID] = t
	return nil
}

// --- Partner Command ---

// Partner declares a co-investor who can take shares in items.
type Partner struct {
	baseCmd
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func NewPartner(day date.Date, memo, id, name, email string) Partner {
	return Partner{baseCmd: baseCmd{Command: CmdPartner, Date: day, Memo: memo}, ID: id, Name: name, Email: email}
}

func (t Partner) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("id", t.ID)
	w.Optional("name", t.Name)
	w.Optional("email", t.Email)
	return w.MarshalJSON()
}

func (t Partner) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if t.ID == "" {
		return t, errors.New("partner id is missing")
	}
	return validate(ledger, t)
}

func (t Partner) apply(b *book) error {
	if _, exists := b.partners[t.ID]; exists {
		return fmt.Errorf("partner %q already declared", t.ID)
	}
	b.partners[t.ID] = t
	return nil
}

// --- Watch Command ---

// WatchTx adds an item to the watchlist ahead of an auction.
type WatchTx struct {
	itemCmd
	Title   string              `json:"title"`
	Auction string              `json:"auction,omitempty"`
	Lot     string              `json:"lot,omitempty"`
	MaxBid  decimal.NullDecimal `json:"maxBid"`
	Target  decimal.NullDecimal `json:"target"`
}

func NewWatch(day date.Date, memo, item, title, auction, lot string, maxBid, target decimal.NullDecimal) WatchTx {
	return WatchTx{
		itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdWatch, Date: day, Memo: memo}, Item: item},
		Title:   title, Auction: auction, Lot: lot, MaxBid: maxBid, Target: target,
	}
}

func (t WatchTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("title", t.Title)
	w.Optional("auction", t.Auction)
	w.Optional("lot", t.Lot)
	w.Optional("maxBid", t.MaxBid)
	w.Optional("target", t.Target)
	return w.MarshalJSON()
}

// Validate generates an item id when none is given.
func (t WatchTx) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if t.Item == "" {
		t.Item = uuid.NewString()[:8]
	}
	if t.Title == "" {
		return t, errors.New("item title is missing")
	}
	if t.MaxBid.Valid {
		if err := notNegative("max bid", t.MaxBid.Decimal); err != nil {
			return t, err
		}
	}
	return validate(ledger, t)
}

func (t WatchTx) apply(b *book) error {
	if _, exists := b.items[t.Item]; exists {
		return fmt.Errorf("item %q already exists", t.Item)
	}
	if t.Auction != "" {
		if _, ok := b.auctions[t.Auction]; !ok {
			return fmt.Errorf("%w: auction %q not declared", ErrInvalid, t.Auction)
		}
	}
	b.add(&Item{
		ID:            t.Item,
		Title:         t.Title,
		Auction:       t.Auction,
		LotNumber:     t.Lot,
		Status:        Watch,
		PlannedMaxBid: AmountOf(t.MaxBid, b.currency),
		TargetPrice:   AmountOf(t.Target, b.currency),
	})
	return nil
}

// --- Win Command ---

// Win records the purchase of a watched item. A positive Pieces makes it a
// multi-piece lot, sold piece by piece.
type Win struct {
	itemCmd
	Price  decimal.Decimal `json:"price"`
	Pieces int             `json:"pieces,omitempty"`
}

func NewWin(day date.Date, memo, item string, price decimal.Decimal, pieces int) Win {
	return Win{itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdWin, Date: day, Memo: memo}, Item: item}, Price: price, Pieces: pieces}
}

func (t Win) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("price", t.Price)
	w.Optional("pieces", t.Pieces)
	return w.MarshalJSON()
}

func (t Win) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := notNegative("price", t.Price); err != nil {
		return t, err
	}
	if t.Pieces < 0 {
		return t, fmt.Errorf("%w: pieces cannot be negative, got %d", ErrInvalid, t.Pieces)
	}
	return validate(ledger, t)
}

func (t Win) apply(b *book) error {
	it, err := t.lookup(b)
	if err != nil {
		return err
	}
	if it.Status != Watch {
		return fmt.Errorf("%w: item %q is already %s", ErrInvalid, it.ID, it.Status)
	}
	it.Status = Won
	it.WonDate = t.Date
	it.PurchasePrice = Some(M(t.Price, b.currency))
	if t.Pieces > 0 {
		it.MultiPiece = true
		it.PiecesTotal = t.Pieces
		it.PiecesRemaining = t.Pieces
	}
	return nil
}

// bought returns the item if it has been won.
func (t itemCmd) bought(b *book) (*Item, error) {
	it, err := t.lookup(b)
	if err != nil {
		return nil, err
	}
	if it.Status == Watch {
		return nil, fmt.Errorf("%w: item %q has not been won", ErrInvalid, it.ID)
	}
	return it, nil
}

// --- Refurb Command ---

// Refurb adds a refurbishment cost to an item.
type Refurb struct {
	itemCmd
	Amount decimal.Decimal `json:"amount"`
}

func NewRefurb(day date.Date, memo, item string, amount decimal.Decimal) Refurb {
	return Refurb{itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdRefurb, Date: day, Memo: memo}, Item: item}, Amount: amount}
}

func (t Refurb) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t Refurb) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := positive("refurbishment amount", t.Amount); err != nil {
		return t, err
	}
	return validate(ledger, t)
}

func (t Refurb) apply(b *book) error {
	it, err := t.bought(b)
	if err != nil {
		return err
	}
	it.RefurbCost = Some(it.RefurbCost.OrZero().Add(M(t.Amount, b.currency)))
	return nil
}

// --- Expense Command ---

// ExpenseTx adds an itemized expense to an item.
type ExpenseTx struct {
	itemCmd
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}

func NewExpense(day date.Date, memo, item string, amount decimal.Decimal, category, description string) ExpenseTx {
	return ExpenseTx{
		itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdExpense, Date: day, Memo: memo}, Item: item},
		Amount:  amount, Category: category, Description: description,
	}
}

func (t ExpenseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("amount", t.Amount)
	w.Optional("category", t.Category)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

func (t ExpenseTx) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := positive("expense amount", t.Amount); err != nil {
		return t, err
	}
	if t.Category == "" {
		t.Category = "other"
	}
	return validate(ledger, t)
}

func (t ExpenseTx) apply(b *book) error {
	it, err := t.bought(b)
	if err != nil {
		return err
	}
	it.Expenses = append(it.Expenses, Expense{
		Date:        t.Date,
		Category:    t.Category,
		Description: t.Description,
		Amount:      M(t.Amount, b.currency),
	})
	return nil
}

// --- List Command ---

// List puts an item up for sale on a channel, optionally with a new target price.
type List struct {
	itemCmd
	Channel string              `json:"channel,omitempty"`
	Target  decimal.NullDecimal `json:"target"`
}

func NewList(day date.Date, memo, item, channel string, target decimal.NullDecimal) List {
	return List{itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdList, Date: day, Memo: memo}, Item: item}, Channel: channel, Target: target}
}

func (t List) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Optional("channel", t.Channel)
	w.Optional("target", t.Target)
	return w.MarshalJSON()
}

func (t List) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	return validate(ledger, t)
}

func (t List) apply(b *book) error {
	it, err := t.bought(b)
	if err != nil {
		return err
	}
	if it.Status == Sold {
		return fmt.Errorf("%w: item %q is already sold", ErrInvalid, it.ID)
	}
	it.Status = Listed
	it.ListDate = t.Date
	it.ListChannel = t.Channel
	if t.Target.Valid {
		it.TargetPrice = AmountOf(t.Target, b.currency)
	}
	return nil
}

// --- Sell Command ---

// Sell records the sale of a whole item.
type Sell struct {
	itemCmd
	Price    decimal.Decimal `json:"price"`
	Fees     decimal.Decimal `json:"fees,omitempty"`
	Shipping decimal.Decimal `json:"shipping,omitempty"`
}

func NewSell(day date.Date, memo, item string, price, fees, shipping decimal.Decimal) Sell {
	return Sell{
		itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Item: item},
		Price:   price, Fees: fees, Shipping: shipping,
	}
}

func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("price", t.Price)
	w.Optional("fees", t.Fees)
	w.Optional("shipping", t.Shipping)
	return w.MarshalJSON()
}

func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := notNegative("price", t.Price); err != nil {
		return t, err
	}
	if err := notNegative("fees", t.Fees); err != nil {
		return t, err
	}
	if err := notNegative("shipping", t.Shipping); err != nil {
		return t, err
	}
	return validate(ledger, t)
}

func (t Sell) apply(b *book) error {
	it, err := t.bought(b)
	if err != nil {
		return err
	}
	if it.MultiPiece {
		return fmt.Errorf("%w: item %q is sold by the piece, use %s", ErrInvalid, it.ID, CmdSellPieces)
	}
	if it.Status == Sold {
		return fmt.Errorf("%w: item %q is already sold", ErrInvalid, it.ID)
	}
	it.Status = Sold
	it.SaleDate = t.Date
	it.SalePrice = Some(M(t.Price, b.currency))
	it.SaleFees = Some(M(t.Fees, b.currency))
	it.ShippingCost = Some(M(t.Shipping, b.currency))
	return nil
}

// --- SellPieces Command ---

// SellPieces records the sale of some pieces of a multi-piece lot, at a price per piece.
type SellPieces struct {
	itemCmd
	Pieces   int             `json:"pieces"`
	Price    decimal.Decimal `json:"price"`
	Fees     decimal.Decimal `json:"fees,omitempty"`
	Shipping decimal.Decimal `json:"shipping,omitempty"`
	Channel  string          `json:"channel,omitempty"`
}

func NewSellPieces(day date.Date, memo, item string, pieces int, price, fees, shipping decimal.Decimal, channel string) SellPieces {
	return SellPieces{
		itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdSellPieces, Date: day, Memo: memo}, Item: item},
		Pieces:  pieces, Price: price, Fees: fees, Shipping: shipping, Channel: channel,
	}
}

func (t SellPieces) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("pieces", t.Pieces)
	w.Append("price", t.Price)
	w.Optional("fees", t.Fees)
	w.Optional("shipping", t.Shipping)
	w.Optional("channel", t.Channel)
	return w.MarshalJSON()
}

func (t SellPieces) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := notNegative("price", t.Price); err != nil {
		return t, err
	}
	if err := notNegative("fees", t.Fees); err != nil {
		return t, err
	}
	if err := notNegative("shipping", t.Shipping); err != nil {
		return t, err
	}
	return validate(ledger, t)
}

func (t SellPieces) apply(b *book) error {
	it, err := t.bought(b)
	if err != nil {
		return err
	}
	return it.SellPieces(PieceSale{
		Date:     t.Date,
		Pieces:   t.Pieces,
		Price:    M(t.Price, b.currency),
		Fees:     M(t.Fees, b.currency),
		Shipping: M(t.Shipping, b.currency),
		Channel:  t.Channel,
	})
}

// --- Share Command ---

// Partnership gives a declared partner a percentage of an item's net profit.
// Shares of one item may add up to more than 100%: it is reported, not rejected.
type Partnership struct {
	itemCmd
	Partner string  `json:"partner"`
	Pct     Percent `json:"pct"`
}

func NewPartnership(day date.Date, memo, item, partner string, pct Percent) Partnership {
	return Partnership{itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdShare, Date: day, Memo: memo}, Item: item}, Partner: partner, Pct: pct}
}

func (t Partnership) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("partner", t.Partner)
	w.Append("pct", float64(t.Pct))
	return w.MarshalJSON()
}

func (t Partnership) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if !t.Pct.Valid() {
		return t, fmt.Errorf("%w: share percentage %v must be between 0 and 100", ErrInvalid, t.Pct)
	}
	return validate(ledger, t)
}

func (t Partnership) apply(b *book) error {
	it, err := t.lookup(b)
	if err != nil {
		return err
	}
	if _, ok := b.partners[t.Partner]; !ok {
		return fmt.Errorf("%w: partner %q not declared", ErrInvalid, t.Partner)
	}
	if !t.Pct.Valid() {
		return fmt.Errorf("%w: share percentage %v must be between 0 and 100", ErrInvalid, t.Pct)
	}
	it.Shares = append(it.Shares, Share{Partner: t.Partner, Pct: t.Pct})
	return nil
}

// --- Suggest Command ---

// Suggest records a suggested resale price, typically from comparable sales.
type Suggest struct {
	itemCmd
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source,omitempty"`
}

func NewSuggest(day date.Date, memo, item string, price decimal.Decimal, source string) Suggest {
	return Suggest{itemCmd: itemCmd{baseCmd: baseCmd{Command: CmdSuggest, Date: day, Memo: memo}, Item: item}, Price: price, Source: source}
}

func (t Suggest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.itemCmd)
	w.Append("price", t.Price)
	w.Optional("source", t.Source)
	return w.MarshalJSON()
}

func (t Suggest) Validate(ledger *Ledger) (Transaction, error) {
	t.defaults()
	if err := positive("suggested price", t.Price); err != nil {
		return t, err
	}
	return validate(ledger, t)
}

func (t Suggest) apply(b *book) error {
	it, err := t.lookup(b)
	if err != nil {
		return err
	}
	it.SuggestedPrice = Some(M(t.Price, b.currency))
	return nil
}
