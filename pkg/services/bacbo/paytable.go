package bacbo

import "github.com/shopspring/decimal"

const (
	MinScore = 2  // two dice showing 1
	MaxScore = 12 // two dice showing 6
)

// TiePaytable maps the tied score to the X:1 odds paid on a tie wager
var TiePaytable = map[int]int64{
	2:  88,
	3:  25,
	4:  10,
	5:  6,
	6:  4,
	7:  4,
	8:  4,
	9:  6,
	10: 10,
	11: 25,
	12: 88,
}

// tiePushRefund is the share of a player/banker stake returned on a tie
var tiePushRefund = decimal.RequireFromString("0.9")

// TiePayout returns the odds for a tie at sum. ok is false outside [2, 12].
func TiePayout(sum int) (int64, bool) {
	ratio, ok := TiePaytable[sum]
	return ratio, ok
}

// TiePushRefund returns the fraction of the stake handed back on a tie push
func TiePushRefund() decimal.Decimal {
	return tiePushRefund
}
