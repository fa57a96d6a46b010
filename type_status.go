package flip

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle stage of an item.
type Status int

const (
	Watch  Status = iota // on the watchlist, not yet bid
	Won                  // won at auction, bought
	Listed               // listed for resale
	Sold                 // sold, or every piece of a lot sold
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{Watch, Won, Listed, Sold}

func (s Status) String() string {
	switch s {
	case Watch:
		return "watch"
	case Won:
		return "won"
	case Listed:
		return "listed"
	case Sold:
		return "sold"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "watch":
		return Watch, nil
	case "won":
		return Won, nil
	case "listed":
		return Listed, nil
	case "sold":
		return Sold, nil
	default:
		return 0, fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
	}
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
