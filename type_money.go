package dungeon

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount of the single money unit. It has no fractional part.
type Money int64

// String returns the amount with thousands separators and the money unit, e.g. "1,234 키나".
func (m Money) String() string {
	return money.GetCurrency(kina).Formatter().Format(int64(m))
}

// SignedString is like String with an explicit sign on positive amounts.
// Zero is represented as "-".
func (m Money) SignedString() string {
	switch {
	case m == 0:
		return "-"
	case m > 0:
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) decimal() decimal.Decimal { return decimal.NewFromInt(int64(m)) }
