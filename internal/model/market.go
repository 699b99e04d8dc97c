package model

import (
	"fmt"
	"strings"
)

// Market is a settlement market. Keep these values stable; they are written
// to CSV exports and API responses.
type Market string

const (
	MarketDAM Market = "DAM"
	MarketRTM Market = "RTM"
)

// ParseMarket accepts "DAM" or "RTM" in any case.
func ParseMarket(s string) (Market, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(MarketDAM):
		return MarketDAM, nil
	case string(MarketRTM):
		return MarketRTM, nil
	default:
		return "", fmt.Errorf("unknown market %q", s)
	}
}

// MarketSelection is what the user picked in the market selector.
type MarketSelection string

const (
	SelectDAM  MarketSelection = "DAM"
	SelectRTM  MarketSelection = "RTM"
	SelectBoth MarketSelection = "Both"
)

// ParseMarketSelection is case-insensitive and also accepts the comma-list
// form a multi-select widget produces ("DAM,RTM").
func ParseMarketSelection(s string) (MarketSelection, error) {
	var dam, rtm bool
	for _, part := range strings.Split(s, ",") {
		switch strings.ToUpper(strings.TrimSpace(part)) {
		case "":
		case "DAM":
			dam = true
		case "RTM":
			rtm = true
		case "BOTH":
			dam, rtm = true, true
		default:
			return "", fmt.Errorf("%w: unknown market %q", ErrEmptySelection, strings.TrimSpace(part))
		}
	}
	switch {
	case dam && rtm:
		return SelectBoth, nil
	case dam:
		return SelectDAM, nil
	case rtm:
		return SelectRTM, nil
	default:
		return "", ErrEmptySelection
	}
}

// Markets returns the selected markets, DAM first. An invalid selection
// returns nil.
func (s MarketSelection) Markets() []Market {
	switch s {
	case SelectDAM:
		return []Market{MarketDAM}
	case SelectRTM:
		return []Market{MarketRTM}
	case SelectBoth:
		return []Market{MarketDAM, MarketRTM}
	default:
		return nil
	}
}

func (s MarketSelection) Validate() error {
	if len(s.Markets()) == 0 {
		return ErrEmptySelection
	}
	return nil
}
