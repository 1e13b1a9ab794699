/*
split.go - Three-way reimbursement apportionment

PURPOSE:
  Splits a monthly monetary differential across travel, fuel, and expense
  reimbursements. Each category independently declares one of four modes;
  allocation runs in three strict phases so the result is order-independent
  of how the user configured the categories:

  Phase FIXED:     guaranteed minimums, capped at what's left
  Phase PERCENT:   a share of the GROSS total (not the shrinking remainder),
                   capped at what's left
  Phase REMAINDER: the first category in travel->fuel->expenses order marked
                   REMAINDER absorbs everything still unallocated

  Within every phase categories are visited in travel, fuel, expenses order.
  Non-positive totals return an all-zero split.

INVARIANT:
  All components are >= 0 and travel+fuel+expenses <= total, with equality
  whenever the total is positive and some category is a REMAINDER sink.
*/
package planner

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Split apportions a monetary total across the three reimbursement
// categories. A nil config yields an all-zero split.
func Split(total decimal.Decimal, config *SplitConfig) MonthlySplit {
	var out MonthlySplit
	if config == nil || total.Sign() <= 0 {
		return out
	}

	remaining := total
	cells := []struct {
		rule SplitRule
		dest *decimal.Decimal
	}{
		{config.Travel, &out.Travel},
		{config.Fuel, &out.Fuel},
		{config.Expenses, &out.Expenses},
	}

	// Phase FIXED: first claim on the total.
	for _, c := range cells {
		if c.rule.Mode != SplitFixed {
			continue
		}
		take := decimal.Min(c.rule.Value, remaining)
		if take.Sign() > 0 {
			*c.dest = c.dest.Add(take)
			remaining = remaining.Sub(take)
		}
	}

	// Phase PERCENT: share of the gross total, capped at what's left.
	for _, c := range cells {
		if c.rule.Mode != SplitPercent || remaining.Sign() <= 0 {
			continue
		}
		share := total.Mul(c.rule.Value).Div(oneHundred)
		take := decimal.Min(share, remaining)
		if take.Sign() > 0 {
			*c.dest = c.dest.Add(take)
			remaining = remaining.Sub(take)
		}
	}

	// Phase REMAINDER: the first sink takes everything left.
	if remaining.Sign() > 0 {
		for _, c := range cells {
			if c.rule.Mode == SplitRemainder {
				*c.dest = c.dest.Add(remaining)
				break
			}
		}
	}

	return out
}
