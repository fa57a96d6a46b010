package flip

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns a sorted Ledger. Transactions are not
// validated, see Ledger.Check.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		tx, err := decodeTransaction(lineBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ledger.transactions = append(ledger.transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	ledger.stableSort()
	return ledger, nil
}

func decodeTransaction(data []byte) (Transaction, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(data), err)
	}
	switch identifier.Command {
	case CmdInit:
		return decodeAs[Init](data)
	case CmdAuction:
		return decodeAs[Auction](data)
	case CmdPartner:
		return decodeAs[Partner](data)
	case CmdWatch:
		return decodeAs[WatchTx](data)
	case CmdWin:
		return decodeAs[Win](data)
	case CmdRefurb:
		return decodeAs[Refurb](data)
	case CmdExpense:
		return decodeAs[ExpenseTx](data)
	case CmdList:
		return decodeAs[List](data)
	case CmdSell:
		return decodeAs[Sell](data)
	case CmdSellPieces:
		return decodeAs[SellPieces](data)
	case CmdShare:
		return decodeAs[Partnership](data)
	case CmdSuggest:
		return decodeAs[Suggest](data)
	default:
		return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
	}
}

func decodeAs[T Transaction](data []byte) (Transaction, error) {
	var tx T
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// EncodeTransaction writes a single transaction as one JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger in JSONL format, in chronological order.
// Transactions on the same day keep their relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
