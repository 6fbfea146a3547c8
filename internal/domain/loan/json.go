package loan

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Scale of every decimal column on loans.
const decimalScale = 2

// fixed renders a decimal as a quoted string with decimalScale places.
type fixed decimal.Decimal

func (f fixed) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(decimal.Decimal(f).StringFixed(decimalScale))), nil
}

// MarshalJSON keeps trailing zeros on decimal fields ("12.70", not "12.7").
func (l Loan) MarshalJSON() ([]byte, error) {
	type plain Loan
	return json.Marshal(struct {
		plain
		InterestRate      fixed `json:"interestRate"`
		PerGramRate       fixed `json:"perGramRate"`
		PenalInterestRate fixed `json:"penalInterestRate"`
		RupeekGoldRate    fixed `json:"rupeekGoldRate"`
		LTV               fixed `json:"ltv"`
		TotalGrossWeight  fixed `json:"totalGrossWeight"`
		TotalNetWeight    fixed `json:"totalNetWeight"`
		TotalAdjustment   fixed `json:"totalAdjustment"`
	}{
		plain:             plain(l),
		InterestRate:      fixed(l.InterestRate),
		PerGramRate:       fixed(l.PerGramRate),
		PenalInterestRate: fixed(l.PenalInterestRate),
		RupeekGoldRate:    fixed(l.RupeekGoldRate),
		LTV:               fixed(l.LTV),
		TotalGrossWeight:  fixed(l.TotalGrossWeight),
		TotalNetWeight:    fixed(l.TotalNetWeight),
		TotalAdjustment:   fixed(l.TotalAdjustment),
	})
}
