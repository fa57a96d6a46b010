package agent

import (
	"context"
	"fmt"

	"github.com/etnz/flip"
	"github.com/etnz/flip/date"
	"github.com/etnz/flip/docs"
	"github.com/etnz/flip/renderer"
	"google.golang.org/genai"
)

func instructions(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instructions(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			The user buys items at auctions, refurbishes them and sells them again.
			Learn about the experts' skills from the Tools and ask them questions.
			They keep the context of your previous questions.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. Answer in markdown.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketAnalyst creates an expert searching the web for resale prices.
func NewMarketAnalyst(model string) *Expert {
	return &Expert{
		Name: "MarketAnalyst",
		Description: `The market analyst knows second hand markets and auction houses.
		Ask the MarketAnalyst about recent resale prices, demand and where to sell an item.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instructions(`
			You are an expert of second hand markets. You use Google Search to find recent
			sale prices of comparable items, and you always quote your sources.
			`),
		},
	}
}

// NewBookkeeper creates an expert reading the ledger, with fees at feeRate.
func NewBookkeeper(model string, ledger *flip.Ledger, feeRate flip.Rate) (*Expert, error) {
	profit, err := docs.GetTopic("profit")
	if err != nil {
		return nil, err
	}
	lib := Bookkeeping(ledger, feeRate)
	return &Expert{
		Name: "Bookkeeper",
		Description: `The Bookkeeper reads the user's ledger of items bought at auctions and resold.
		Ask the Bookkeeper about items, costs, profits, partners and cash flow.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instructions(`
			You are the bookkeeper of the user's resale business. Use the Tools to read the
			ledger; never guess figures. Values shown as n/a are not known yet.

			` + profit),
		},
		Library: NewLibrary(lib),
	}, nil
}

// Bookkeeping returns the functions reading the ledger.
func Bookkeeping(ledger *flip.Ledger, feeRate flip.Rate) []Function {
	dates, _ := docs.GetTopic("dates")
	items := func() ([]*flip.Item, error) {
		items, err := ledger.Items()
		if err != nil {
			return nil, fmt.Errorf("could not replay ledger: %w", err)
		}
		return items, nil
	}
	noArgs := &genai.Schema{Type: genai.TypeObject}
	markdown := &genai.Schema{Type: genai.TypeString, Description: "A markdown report."}

	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Items",
				Description: "Items lists every item with its status, cost, revenue, net profit and ROI.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				all, err := items()
				if err != nil {
					return "", err
				}
				return renderer.ItemsMarkdown(all), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Item",
				Description: "Item details one item: prices, valuation, expenses, piece sales and partner shares.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {Type: genai.TypeString, Description: "The item id, as listed by Items."},
					},
					Required: []string{"id"},
				},
				Response: markdown,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				id, err := stringArg(args, "id", true)
				if err != nil {
					return "", err
				}
				it, err := ledger.Item(id)
				if err != nil {
					return "", err
				}
				return renderer.ItemMarkdown(it, feeRate), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Summary",
				Description: "Summary aggregates all items: counts per status, invested, sold value, profits and ROI.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				all, err := items()
				if err != nil {
					return "", err
				}
				return renderer.SummaryMarkdown(flip.Summarize(all)), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Partners",
				Description: "Partners reports each partner's earnings on sold items and estimated pending share.",
				Parameters:  noArgs,
				Response:    markdown,
			},
			Func: func(context.Context, map[string]any) (string, error) {
				report, err := flip.NewPartnerReport(ledger)
				if err != nil {
					return "", err
				}
				return renderer.PartnersMarkdown(report), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Profit",
				Description: "Profit analyses sold items: top performers, profit per auction and monthly trend.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {Type: genai.TypeString, Description: "The last day of the monthly trend, today by default.\n\n" + dates},
					},
				},
				Response: markdown,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				on, err := dateArg(args)
				if err != nil {
					return "", err
				}
				all, err := items()
				if err != nil {
					return "", err
				}
				return renderer.ProfitMarkdown(flip.NewProfitAnalysis(all, on)), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "CashFlow",
				Description: "CashFlow lists money in and out during a period.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date":   {Type: genai.TypeString, Description: "A day within the period, today by default.\n\n" + dates},
						"period": {Type: genai.TypeString, Description: "day, week, month, quarter or year. month by default."},
					},
				},
				Response: markdown,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				on, err := dateArg(args)
				if err != nil {
					return "", err
				}
				name, err := stringArg(args, "period", false)
				if err != nil {
					return "", err
				}
				period := date.Monthly
				if name != "" {
					if period, err = date.ParsePeriod(name); err != nil {
						return "", err
					}
				}
				c, err := flip.NewCashFlow(ledger, date.NewRange(on, period))
				if err != nil {
					return "", err
				}
				return renderer.CashFlowMarkdown(c), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "BidTargets",
				Description: "BidTargets computes the break-even resale price of a bid, and the prices giving 20%, 50% and 100% profit.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"max_bid": {Type: genai.TypeNumber, Description: "The maximum bid."},
						"refurb":  {Type: genai.TypeNumber, Description: "The estimated refurbishment cost, 0 by default."},
					},
					Required: []string{"max_bid"},
				},
				Response: markdown,
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				cur := ledger.Currency()
				bid, err := numberArg(args, "max_bid", true)
				if err != nil {
					return "", err
				}
				refurb, err := numberArg(args, "refurb", false)
				if err != nil {
					return "", err
				}
				maxBid, refurbCost := flip.A(bid, cur), flip.A(refurb, cur)
				targets := flip.BidTargets(maxBid, refurbCost, feeRate)
				return renderer.TargetsMarkdown(maxBid, refurbCost, feeRate, targets), nil
			},
		},
	}
}

func dateArg(args map[string]any) (date.Date, error) {
	s, err := stringArg(args, "date", false)
	if err != nil || s == "" {
		return date.Today(), err
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Today(), fmt.Errorf("argument 'date' must be a valid date got %q: %w", s, err)
	}
	return on, nil
}

func numberArg(args map[string]any, name string, required bool) (float64, error) {
	v, ok := args[name]
	if !ok {
		if required {
			return 0, fmt.Errorf("argument %q is missing", name)
		}
		return 0, nil
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}
