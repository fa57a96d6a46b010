package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/flip"
	"github.com/etnz/flip/agent"
	"github.com/etnz/flip/docs"
	"github.com/etnz/flip/pricing"
	"github.com/etnz/flip/store"
	"github.com/google/subcommands"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// --- Fmt Command ---

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validate and format the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt

  Validates every transaction of the ledger, sorts them by date and writes
  them back in a canonical JSONL format. The file is left untouched when the
  ledger is invalid.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	file := e.cfg.Ledger.File
	tmp, err := os.CreateTemp(filepath.Dir(file), ".flip-*.jsonl")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer os.Remove(tmp.Name())
	if err := flip.EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		fmt.Fprintf(os.Stderr, "Error formatting ledger %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	if err := tmp.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	e.log.Info("ledger formatted", zap.String("file", file), zap.Int("transactions", ledger.Len()))
	fmt.Fprintf(stdout, "Successfully formatted %s\n", file)
	return subcommands.ExitSuccess
}

// --- Price Command ---

type priceCmd struct {
	txFlags
	item   string
	record bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "suggest a resale price from comparable sales" }
func (*priceCmd) Usage() string {
	return `price [-i <item> [-record]] [<query>]

  Suggests a resale price, the median of the comparable sales of the query.
  Comparable sales are read from saved marketplace searches, one JSON file per
  query in the pricing directory of the settings. Suggestions are cached.

  With -i, the query defaults to the item's title, and -record appends the
  suggestion to the ledger.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.item, "i", "", "Item to price")
	f.BoolVar(&c.record, "record", false, "Record the suggested price of the item in the ledger")
}

// cache returns the price cache selected by the settings, and a func to release it.
func (e *env) cache() (pricing.Store, func()) {
	if e.cfg.Pricing.Cache != "redis" {
		return pricing.NewMemoryStore(), func() {}
	}
	r := e.cfg.Redis
	s := pricing.NewRedisStore(&redis.Options{Addr: r.Addr, Password: r.Password, DB: r.DB}, r.Prefix)
	return s, func() {
		if err := s.Close(); err != nil {
			e.log.Warn("closing redis", zap.Error(err))
		}
	}
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if query == "" && c.item == "" {
		fmt.Fprintln(os.Stderr, "Error: a query or an item is required")
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.record && c.item == "" {
		return usage(f, "-i")
	}
	day, err := c.day()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	if query == "" {
		ledger, err := e.decodeLedger()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		it, err := ledger.Item(c.item)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		query = it.Title
	}

	cache, release := e.cache()
	defer release()
	s := &pricing.Suggester{
		Source: pricing.FileSource{Dir: e.cfg.Pricing.Dir},
		Cache:  cache,
		TTL:    e.cfg.Pricing.TTL,
		Logger: e.log,
	}
	sug, err := s.Suggest(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pricing %q: %v\n", query, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Price of %s\n\n", query)
	fmt.Fprintf(&b, "| | |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Suggested | %s |\n", sug.Price.StringFixed(2))
	fmt.Fprintf(&b, "| Low | %s |\n", sug.Low.StringFixed(2))
	fmt.Fprintf(&b, "| High | %s |\n", sug.High.StringFixed(2))
	fmt.Fprintf(&b, "| Comparables | %d |\n", sug.Comparables)
	printMarkdown(b.String())

	if !c.record {
		return subcommands.ExitSuccess
	}
	return e.appendTransaction(flip.NewSuggest(day, c.memo, c.item, sug.Price, "comparables"))
}

// --- Sync Command ---

type syncCmd struct {
	db string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "copy the items into the SQLite database" }
func (*syncCmd) Usage() string {
	return `sync [-db <path>]

  Replays the ledger and replaces the items of the SQLite database with its
  items, for other tools to query.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.db, "db", "", "Database path, the settings' by default")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	path := c.db
	if path == "" {
		path = e.cfg.DB.Path
	}
	_, items, err := e.items()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	db, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	defer db.Close()
	if err := store.EnsureSchema(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.SaveItems(ctx, db, items); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving items: %v\n", err)
		return subcommands.ExitFailure
	}
	saved, err := store.ListItems(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading items back: %v\n", err)
		return subcommands.ExitFailure
	}
	e.log.Info("items synced", zap.String("db", path), zap.Int("items", len(saved)))
	fmt.Fprintf(stdout, "Successfully synced %d items to %s\n", len(saved), path)
	return subcommands.ExitSuccess
}

// --- Topic Command ---

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [<topic>...]

  Shows the documentation of the topics, the readme by default.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// --- Assist Command ---

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an assistant about the ledger" }
func (*assistCmd) Usage() string {
	return `assist [<question>]

  Starts an interactive session with an AI assistant reading the ledger.
  Requires a Gemini API key in GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	model := e.cfg.Assist.Model
	bookkeeper, err := agent.NewBookkeeper(model, ledger, e.feeRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	analyst := agent.NewMarketAnalyst(model)
	bookkeeper.Logger, analyst.Logger = e.log, e.log

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(stdout, os.Stdin, model, bookkeeper, analyst)
	a.Render = func(md string) string {
		out, err := render(md)
		if err != nil {
			return md
		}
		return out
	}
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	e.log.Debug("assistant started", zap.String("model", model))
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
