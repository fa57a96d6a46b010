package cmd

import (
	"flag"

	"github.com/etnz/flip"
	"github.com/etnz/flip/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the subcommands, their flags and arguments.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*.yaml"),
			"ledger-file": predict.Files("*.jsonl"),
			"v":           predict.Nothing,
		},
	}
	for _, group := range Groups {
		for _, c := range group.Commands {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
			f.VisitAll(func(fl *flag.Flag) {
				sub.Flags[fl.Name] = flagPredictor(c.Name(), fl.Name)
			})
			switch c.Name() {
			case "item":
				sub.Args = complete.PredictFunc(predictItems)
			case "topic":
				sub.Args = complete.PredictFunc(predictTopics)
			}
			root.Sub[c.Name()] = sub
		}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func commandNames() []string {
	var names []string
	for _, group := range Groups {
		for _, c := range group.Commands {
			names = append(names, c.Name())
		}
	}
	return names
}

// flagPredictor predicts the values of the flag name of the command cmd.
func flagPredictor(cmd, name string) complete.Predictor {
	switch name {
	case "i":
		return complete.PredictFunc(predictItems)
	case "partner":
		return complete.PredictFunc(predictPartners)
	case "auction":
		return complete.PredictFunc(predictAuctions)
	case "s":
		var statuses []string
		for _, s := range flip.Statuses {
			statuses = append(statuses, s.String())
		}
		return predict.Set(statuses)
	case "p":
		if cmd == "cashflow" || cmd == "export" {
			return predict.Set{"day", "week", "month", "quarter", "year"}
		}
	case "what":
		return predict.Set{"profit", "cashflow"}
	case "o":
		return predict.Files("*.csv")
	case "db":
		return predict.Files("*.db")
	case "record":
		return predict.Nothing
	case "c":
		if cmd == "init" {
			return predict.Set{"USD", "EUR", "GBP", "CHF", "CAD"}
		}
	}
	return predict.Something
}

// completionLedger quietly decodes the ledger of the default settings.
func completionLedger() *flip.Ledger {
	cfg, err := settings()
	if err != nil {
		return nil
	}
	e := &env{cfg: cfg, log: newLogger(cfg)}
	ledger, err := e.decodeLedger()
	if err != nil {
		return nil
	}
	return ledger
}

func predictItems(prefix string) []string {
	ledger := completionLedger()
	if ledger == nil {
		return nil
	}
	items, err := ledger.Items()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func predictPartners(prefix string) []string {
	if ledger := completionLedger(); ledger != nil {
		return ledger.Partners()
	}
	return nil
}

func predictAuctions(prefix string) []string {
	ledger := completionLedger()
	if ledger == nil {
		return nil
	}
	var ids []string
	for _, a := range ledger.Auctions() {
		ids = append(ids, a.ID)
	}
	return ids
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme")
}
