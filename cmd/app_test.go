package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/flip"
	"github.com/google/subcommands"
)

// workspace is a temporary directory holding the settings, the ledger, the
// saved searches and the database of a test.
type workspace struct {
	dir    string
	ledger string
	comps  string
	db     string
	out    *bytes.Buffer
}

// newWorkspace points the global flags, stdout and the markdown renderer to
// a fresh workspace, restoring them at the end of the test.
func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	w := &workspace{
		dir:    dir,
		ledger: filepath.Join(dir, "flip.jsonl"),
		comps:  filepath.Join(dir, "comps"),
		db:     filepath.Join(dir, "flip.db"),
		out:    new(bytes.Buffer),
	}
	if err := os.Mkdir(w.comps, 0755); err != nil {
		t.Fatalf("Failed to create comps dir: %v", err)
	}
	settings := fmt.Sprintf("ledger:\n  file: %q\npricing:\n  dir: %q\ndb:\n  path: %q\nlog:\n  level: error\n", w.ledger, w.comps, w.db)
	config := filepath.Join(dir, "flip.yaml")
	if err := os.WriteFile(config, []byte(settings), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	oldConfig, oldLedger, oldStdout, oldRender := configFile, ledgerFile, stdout, render
	empty := ""
	configFile, ledgerFile, stdout = &config, &empty, w.out
	render = func(md string) (string, error) { return md, nil }
	t.Cleanup(func() {
		configFile, ledgerFile, stdout, render = oldConfig, oldLedger, oldStdout, oldRender
	})
	return w
}

// run executes cmd with args and returns its exit status.
func (w *workspace) run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(new(bytes.Buffer))
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid args %v: %v", cmd.Name(), args, err)
	}
	return cmd.Execute(context.Background(), f)
}

// mustRun executes cmd and fails the test unless it succeeds.
func (w *workspace) mustRun(t *testing.T, cmd subcommands.Command, args ...string) {
	t.Helper()
	if status := w.run(t, cmd, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want %v", cmd.Name(), args, status, subcommands.ExitSuccess)
	}
}

// decode decodes the workspace ledger.
func (w *workspace) decode(t *testing.T) *flip.Ledger {
	t.Helper()
	f, err := os.Open(w.ledger)
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	defer f.Close()
	ledger, err := flip.DecodeLedger(f)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	return ledger
}

// chair records the life of a chair bought 100, refurbished 20 and sold 200
// with 15 of fees and 5 of shipping, half of it shared with ann.
func (w *workspace) chair(t *testing.T) {
	t.Helper()
	w.mustRun(t, &initCmd{}, "-c", "USD", "-d", "2025-03-01")
	w.mustRun(t, &auctionCmd{}, "-id", "estate", "-title", "Estate sale", "-d", "2025-03-01")
	w.mustRun(t, &partnerCmd{}, "-id", "ann", "-name", "Ann", "-d", "2025-03-01")
	w.mustRun(t, &watchCmd{}, "-i", "chair", "-title", "Oak chair", "-auction", "estate", "-max-bid", "120", "-target", "220", "-d", "2025-03-01")
	w.mustRun(t, &winCmd{}, "-i", "chair", "-p", "100", "-d", "2025-03-02")
	w.mustRun(t, &refurbCmd{}, "-i", "chair", "-a", "20", "-d", "2025-03-05")
	w.mustRun(t, &shareCmd{}, "-i", "chair", "-partner", "ann", "-pct", "50", "-d", "2025-03-05")
	w.mustRun(t, &listCmd{}, "-i", "chair", "-channel", "ebay", "-d", "2025-03-06")
	w.mustRun(t, &sellCmd{}, "-i", "chair", "-p", "200", "-fees", "15", "-shipping", "5", "-d", "2025-04-02")
	w.out.Reset()
}
