package planner_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/workforce-engine/planner"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestSplit_FixedPercentRemainder(t *testing.T) {
	// GIVEN: total 1000, travel FIXED 100, fuel PERCENT 20, expenses REMAINDER
	// THEN: travel 100, fuel 200 (20% of the gross 1000), expenses 700

	config := &planner.SplitConfig{
		Travel:   planner.SplitRule{Mode: planner.SplitFixed, Value: dec(100)},
		Fuel:     planner.SplitRule{Mode: planner.SplitPercent, Value: dec(20)},
		Expenses: planner.SplitRule{Mode: planner.SplitRemainder},
	}

	split := planner.Split(dec(1000), config)
	assert.True(t, split.Travel.Equal(dec(100)), "travel = %s", split.Travel)
	assert.True(t, split.Fuel.Equal(dec(200)), "fuel = %s", split.Fuel)
	assert.True(t, split.Expenses.Equal(dec(700)), "expenses = %s", split.Expenses)
	assert.True(t, split.Total().Equal(dec(1000)))
}

func TestSplit_FirstRemainderWins(t *testing.T) {
	// Multiple REMAINDER categories: only the first in travel->fuel->expenses
	// order absorbs the leftover.
	config := &planner.SplitConfig{
		Travel:   planner.SplitRule{Mode: planner.SplitRemainder},
		Fuel:     planner.SplitRule{Mode: planner.SplitRemainder},
		Expenses: planner.SplitRule{Mode: planner.SplitNone},
	}

	split := planner.Split(dec(500), config)
	assert.True(t, split.Travel.Equal(dec(500)))
	assert.True(t, split.Fuel.IsZero())
	assert.True(t, split.Expenses.IsZero())
}

func TestSplit_NonPositiveTotal(t *testing.T) {
	config := &planner.SplitConfig{
		Travel: planner.SplitRule{Mode: planner.SplitRemainder},
	}

	for _, total := range []decimal.Decimal{dec(0), dec(-120.5)} {
		split := planner.Split(total, config)
		assert.True(t, split.Travel.IsZero())
		assert.True(t, split.Fuel.IsZero())
		assert.True(t, split.Expenses.IsZero())
	}
}

func TestSplit_NilConfig(t *testing.T) {
	split := planner.Split(dec(1000), nil)
	assert.True(t, split.Total().IsZero())
}

func TestSplit_FixedCappedAtRemaining(t *testing.T) {
	// Fixed claims exceeding the total are capped in order.
	config := &planner.SplitConfig{
		Travel: planner.SplitRule{Mode: planner.SplitFixed, Value: dec(80)},
		Fuel:   planner.SplitRule{Mode: planner.SplitFixed, Value: dec(50)},
	}

	split := planner.Split(dec(100), config)
	assert.True(t, split.Travel.Equal(dec(80)))
	assert.True(t, split.Fuel.Equal(dec(20)), "fuel gets only what's left")
	assert.True(t, split.Expenses.IsZero())
}

func TestSplit_PercentAgainstGrossTotal(t *testing.T) {
	// PERCENT shares are computed on the original total, not the remainder
	// left after FIXED - but still capped at what's actually available.
	config := &planner.SplitConfig{
		Travel: planner.SplitRule{Mode: planner.SplitFixed, Value: dec(900)},
		Fuel:   planner.SplitRule{Mode: planner.SplitPercent, Value: dec(50)},
	}

	split := planner.Split(dec(1000), config)
	assert.True(t, split.Travel.Equal(dec(900)))
	// 50% of 1000 is 500, but only 100 remains.
	assert.True(t, split.Fuel.Equal(dec(100)))
}

func TestSplit_NeverExceedsTotal(t *testing.T) {
	config := &planner.SplitConfig{
		Travel:   planner.SplitRule{Mode: planner.SplitFixed, Value: dec(400)},
		Fuel:     planner.SplitRule{Mode: planner.SplitPercent, Value: dec(90)},
		Expenses: planner.SplitRule{Mode: planner.SplitRemainder},
	}

	total := dec(650.75)
	split := planner.Split(total, config)
	assert.False(t, split.Total().GreaterThan(total))
	assert.True(t, split.Total().Equal(total), "a remainder sink absorbs everything")
}

func TestSplit_Idempotent(t *testing.T) {
	config := &planner.SplitConfig{
		Travel:   planner.SplitRule{Mode: planner.SplitFixed, Value: dec(100)},
		Fuel:     planner.SplitRule{Mode: planner.SplitPercent, Value: dec(20)},
		Expenses: planner.SplitRule{Mode: planner.SplitRemainder},
	}

	first := planner.Split(dec(1000), config)
	second := planner.Split(dec(1000), config)
	assert.True(t, first.Travel.Equal(second.Travel))
	assert.True(t, first.Fuel.Equal(second.Fuel))
	assert.True(t, first.Expenses.Equal(second.Expenses))
}
