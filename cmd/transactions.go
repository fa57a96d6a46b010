package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/google/subcommands"
)

// run parses the date flag, builds the transaction and appends it to the ledger.
func run(t *txFlags, build func(e *env, day date.Date) flip.Transaction) subcommands.ExitStatus {
	day, err := t.day()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	return e.appendTransaction(build(e, day))
}

// usage prints the usage of the command when a required flag is missing.
func usage(f *flag.FlagSet, missing string) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %s is required\n", missing)
	f.Usage()
	return subcommands.ExitUsageError
}

// --- Init Command ---

type initCmd struct {
	txFlags
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "set the currency of the ledger" }
func (*initCmd) Usage() string {
	return `init [-c <currency>] [-d <date>] [-m <memo>]

  Sets the currency of the ledger, the currency of the settings if omitted.
  It must come before any item.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.currency, "c", "", "ISO 4217 currency code (USD, EUR...)")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(&c.txFlags, func(e *env, day date.Date) flip.Transaction {
		currency := c.currency
		if currency == "" {
			currency = e.cfg.Ledger.Currency
		}
		return flip.NewInit(day, c.memo, currency)
	})
}

// --- Auction Command ---

type auctionCmd struct {
	txFlags
	id, title, location, url string
}

func (*auctionCmd) Name() string     { return "auction" }
func (*auctionCmd) Synopsis() string { return "declare an auction" }
func (*auctionCmd) Usage() string {
	return `auction -id <id> -title <title> [-location <location>] [-url <url>] [-d <date>] [-m <memo>]

  Declares an auction, dated on the day it takes place. Items can then be
  watched at this auction.
`
}

func (c *auctionCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.id, "id", "", "Auction id")
	f.StringVar(&c.title, "title", "", "Auction title")
	f.StringVar(&c.location, "location", "", "Auction location")
	f.StringVar(&c.url, "url", "", "Auction catalog URL")
}

func (c *auctionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(f, "-id")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewAuction(day, c.memo, c.id, c.title, c.location, c.url)
	})
}

// --- Partner Command ---

type partnerCmd struct {
	txFlags
	id, name, email string
}

func (*partnerCmd) Name() string     { return "partner" }
func (*partnerCmd) Synopsis() string { return "declare a partner" }
func (*partnerCmd) Usage() string {
	return `partner -id <id> [-name <name>] [-email <email>] [-d <date>] [-m <memo>]

  Declares a partner who can then be given shares of items.
`
}

func (c *partnerCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.id, "id", "", "Partner id")
	f.StringVar(&c.name, "name", "", "Partner name")
	f.StringVar(&c.email, "email", "", "Partner email")
}

func (c *partnerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(f, "-id")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewPartner(day, c.memo, c.id, c.name, c.email)
	})
}

// --- Watch Command ---

type watchCmd struct {
	txFlags
	item, title, auction, lot string
	maxBid, target            decimalValue
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "add an item to the watchlist" }
func (*watchCmd) Usage() string {
	return `watch -title <title> [-i <item>] [-auction <id>] [-lot <lot>] [-max-bid <amount>] [-target <amount>] [-d <date>] [-m <memo>]

  Adds an item spotted at an auction to the watchlist. An item id is
  generated when -i is omitted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id, generated if omitted")
	f.StringVar(&c.title, "title", "", "Item title")
	f.StringVar(&c.auction, "auction", "", "Declared auction id")
	f.StringVar(&c.lot, "lot", "", "Lot number in the auction")
	f.Var(&c.maxBid, "max-bid", "Planned maximum bid")
	f.Var(&c.target, "target", "Target resale price")
}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.title == "" {
		return usage(f, "-title")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewWatch(day, c.memo, c.item, c.title, c.auction, c.lot, c.maxBid.null(), c.target.null())
	})
}

// --- Win Command ---

type winCmd struct {
	txFlags
	item   string
	price  decimalValue
	pieces int
}

func (*winCmd) Name() string     { return "win" }
func (*winCmd) Synopsis() string { return "record a won auction" }
func (*winCmd) Usage() string {
	return `win -i <item> -p <price> [-pieces <n>] [-d <date>] [-m <memo>]

  Records the purchase of a watched item at its winning bid. A lot sold by
  the piece is won with its number of pieces.
`
}

func (c *winCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.Var(&c.price, "p", "Winning bid, the purchase price")
	f.IntVar(&c.pieces, "pieces", 0, "Number of pieces of a lot sold by the piece")
}

func (c *winCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.price.set {
		return usage(f, "-p")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewWin(day, c.memo, c.item, c.price.d, c.pieces)
	})
}

// --- Refurb Command ---

type refurbCmd struct {
	txFlags
	item   string
	amount decimalValue
}

func (*refurbCmd) Name() string     { return "refurb" }
func (*refurbCmd) Synopsis() string { return "add a refurbishment cost to an item" }
func (*refurbCmd) Usage() string {
	return `refurb -i <item> -a <amount> [-d <date>] [-m <memo>]

  Adds a refurbishment cost to a won item. Costs add up.
`
}

func (c *refurbCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.Var(&c.amount, "a", "Refurbishment cost")
}

func (c *refurbCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.amount.set {
		return usage(f, "-a")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewRefurb(day, c.memo, c.item, c.amount.d)
	})
}

// --- Expense Command ---

type expenseCmd struct {
	txFlags
	item, category, description string
	amount                      decimalValue
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "add an itemized expense to an item" }
func (*expenseCmd) Usage() string {
	return `expense -i <item> -a <amount> [-c <category>] [-desc <description>] [-d <date>] [-m <memo>]

  Adds an expense (transport, parts, cleaning...) to the cost basis of a won item.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.Var(&c.amount, "a", "Expense amount")
	f.StringVar(&c.category, "c", "", "Expense category, 'other' by default")
	f.StringVar(&c.description, "desc", "", "Expense description")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.amount.set {
		return usage(f, "-a")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewExpense(day, c.memo, c.item, c.amount.d, c.category, c.description)
	})
}

// --- List Command ---

type listCmd struct {
	txFlags
	item, channel string
	target        decimalValue
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list an item for sale" }
func (*listCmd) Usage() string {
	return `list -i <item> [-channel <channel>] [-target <amount>] [-d <date>] [-m <memo>]

  Lists a won item for sale on a channel, optionally updating its target price.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.StringVar(&c.channel, "channel", "", "Sales channel (ebay, shop, market...)")
	f.Var(&c.target, "target", "New target resale price")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewList(day, c.memo, c.item, c.channel, c.target.null())
	})
}

// --- Sell Command ---

type sellCmd struct {
	txFlags
	item                  string
	price, fees, shipping decimalValue
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an item" }
func (*sellCmd) Usage() string {
	return `sell -i <item> -p <price> [-fees <amount>] [-shipping <amount>] [-d <date>] [-m <memo>]

  Records the sale of a won or listed item. Lots sold by the piece use sell-pieces.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.Var(&c.price, "p", "Sale price")
	f.Var(&c.fees, "fees", "Marketplace fees")
	f.Var(&c.shipping, "shipping", "Shipping cost")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.price.set {
		return usage(f, "-p")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewSell(day, c.memo, c.item, c.price.d, c.fees.d, c.shipping.d)
	})
}

// --- Sell Pieces Command ---

type sellPiecesCmd struct {
	txFlags
	item, channel         string
	pieces                int
	price, fees, shipping decimalValue
}

func (*sellPiecesCmd) Name() string     { return "sell-pieces" }
func (*sellPiecesCmd) Synopsis() string { return "record the sale of pieces of a lot" }
func (*sellPiecesCmd) Usage() string {
	return `sell-pieces -i <item> -n <pieces> -p <price per piece> [-fees <amount>] [-shipping <amount>] [-channel <channel>] [-d <date>] [-m <memo>]

  Records the sale of some pieces of a lot. The lot is sold when no piece remains.
`
}

func (c *sellPiecesCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.IntVar(&c.pieces, "n", 0, "Number of pieces sold")
	f.Var(&c.price, "p", "Price of one piece")
	f.Var(&c.fees, "fees", "Marketplace fees of the sale")
	f.Var(&c.shipping, "shipping", "Shipping cost of the sale")
	f.StringVar(&c.channel, "channel", "", "Sales channel")
}

func (c *sellPiecesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.price.set {
		return usage(f, "-p")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewSellPieces(day, c.memo, c.item, c.pieces, c.price.d, c.fees.d, c.shipping.d, c.channel)
	})
}

// --- Share Command ---

type shareCmd struct {
	txFlags
	item, partner string
	pct           float64
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "give a partner a share of an item" }
func (*shareCmd) Usage() string {
	return `share -i <item> -partner <id> -pct <percent> [-d <date>] [-m <memo>]

  Gives a declared partner a percentage, between 0 and 100, of the item's net profit.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.StringVar(&c.partner, "partner", "", "Partner id")
	f.Float64Var(&c.pct, "pct", 0, "Share of the net profit in percent")
}

func (c *shareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if c.partner == "" {
		return usage(f, "-partner")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewPartnership(day, c.memo, c.item, c.partner, flip.Percent(c.pct))
	})
}

// --- Suggest Command ---

type suggestCmd struct {
	txFlags
	item, source string
	price        decimalValue
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "record a suggested resale price" }
func (*suggestCmd) Usage() string {
	return `suggest -i <item> -p <price> [-source <source>] [-d <date>] [-m <memo>]

  Records a suggested resale price for an item. See also 'price' to suggest
  one from comparable sales.
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item id")
	f.Var(&c.price, "p", "Suggested price")
	f.StringVar(&c.source, "source", "", "Where the suggestion comes from")
}

func (c *suggestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		return usage(f, "-i")
	}
	if !c.price.set {
		return usage(f, "-p")
	}
	return run(&c.txFlags, func(_ *env, day date.Date) flip.Transaction {
		return flip.NewSuggest(day, c.memo, c.item, c.price.d, c.source)
	})
}
