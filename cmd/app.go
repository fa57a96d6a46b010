// Package cmd implements the flip command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/flip"
	"github.com/etnz/flip/config"
	"github.com/etnz/flip/logger"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range Groups {
		for _, cmd := range group.Commands {
			c.Register(cmd, group.Name)
		}
	}
}

// Group is a named group of subcommands.
type Group struct {
	Name     string
	Commands []subcommands.Command
}

// Groups lists the subcommands by group.
var Groups = []Group{
	{Name: "ledger", Commands: []subcommands.Command{
		&initCmd{}, &auctionCmd{}, &partnerCmd{},
		&watchCmd{}, &winCmd{}, &refurbCmd{}, &expenseCmd{},
		&listCmd{}, &sellCmd{}, &sellPiecesCmd{}, &shareCmd{}, &suggestCmd{},
		&fmtCmd{},
	}},
	{Name: "reports", Commands: []subcommands.Command{
		&itemsCmd{}, &itemCmd{}, &summaryCmd{}, &partnersCmd{},
		&profitCmd{}, &cashflowCmd{}, &targetsCmd{}, &exportCmd{},
	}},
	{Name: "tools", Commands: []subcommands.Command{
		&priceCmd{}, &syncCmd{}, &assistCmd{}, &topicCmd{},
	}},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", config.DefaultFile, "Path to the settings file (YAML)")
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format), overrides the settings")
	verbose    = flag.Bool("v", false, "Log debug messages")
)

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// settings loads the settings file, the global flags taking precedence.
func settings() (config.Config, error) {
	cfg, err := config.Load(*configFile, *configFile != config.DefaultFile)
	if err != nil {
		return cfg, err
	}
	if *ledgerFile != "" {
		cfg.Ledger.File = *ledgerFile
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the logger from the settings, or a no-op one if they are invalid.
func newLogger(cfg config.Config) *zap.Logger {
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid log settings: %v\n", err)
		return zap.NewNop()
	}
	return log
}

// env is the environment of a subcommand: its settings, logger and fee rate.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	feeRate flip.Rate
}

// setup loads the environment, reporting errors on stderr. It also sets the
// fee rate estimating the pending earnings of partners.
func setup() (*env, bool) {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return nil, false
	}
	feeRate, err := cfg.FeeRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return nil, false
	}
	pending, err := cfg.PendingFeeRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return nil, false
	}
	flip.PendingFeeRate = pending
	return &env{cfg: cfg, log: newLogger(cfg), feeRate: feeRate}, true
}

// decodeLedger decodes the ledger file. A missing file is an empty ledger.
func (e *env) decodeLedger() (*flip.Ledger, error) {
	file := e.cfg.Ledger.File
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		e.log.Debug("ledger file not found, starting empty", zap.String("file", file))
		return flip.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", file, err)
	}
	defer f.Close()

	ledger, err := flip.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", file, err)
	}
	e.log.Debug("ledger loaded", zap.String("file", file), zap.Int("transactions", ledger.Len()))
	return ledger, nil
}

// items decodes the ledger and replays its items.
func (e *env) items() (*flip.Ledger, []*flip.Item, error) {
	ledger, err := e.decodeLedger()
	if err != nil {
		return nil, nil, err
	}
	items, err := ledger.Items()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ledger %q: %w", e.cfg.Ledger.File, err)
	}
	return ledger, items, nil
}

// appendTransaction validates tx against the ledger and appends it to the ledger file.
func (e *env) appendTransaction(tx flip.Transaction) subcommands.ExitStatus {
	ledger, err := e.decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	valid, err := ledger.Validate(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	file := e.cfg.Ledger.File
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := flip.EncodeTransaction(f, valid); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	e.log.Info("transaction appended", zap.String("command", string(valid.What())), zap.String("file", file))
	fmt.Fprintf(stdout, "Successfully appended transaction to %s\n", file)
	return subcommands.ExitSuccess
}

// render formats markdown for the terminal.
var render = func(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// printMarkdown prints markdown to stdout, formatted when possible.
func printMarkdown(md string) {
	out, err := render(md)
	if err != nil {
		out = md
	}
	fmt.Fprint(stdout, out)
}
