package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func closedTiers() []RateTier {
	end1 := int64(100)
	end2 := int64(500)
	return []RateTier{
		{StartUsage: 0, EndUsage: &end1, UnitAmountCents: 100},
		{StartUsage: 100, EndUsage: &end2, UnitAmountCents: 150},
	}
}

func openTiers() []RateTier {
	end1 := int64(100)
	end2 := int64(500)
	return []RateTier{
		{StartUsage: 0, EndUsage: &end1, UnitAmountCents: 100},
		{StartUsage: 100, EndUsage: &end2, UnitAmountCents: 150},
		{StartUsage: 500, EndUsage: nil, UnitAmountCents: 250},
	}
}

func TestCostSpansBrackets(t *testing.T) {
	// 100 units at 100c plus 50 units at 150c.
	require.Equal(t, int64(17500), Cost(closedTiers(), 150))
}

func TestCostExactBoundary(t *testing.T) {
	// Usage equal to a bracket edge must not leak into the next
	// bracket.
	require.Equal(t, int64(10000), Cost(closedTiers(), 100))
	require.Equal(t, int64(10150), Cost(closedTiers(), 101))
}

func TestCostZeroAndNegativeUsage(t *testing.T) {
	require.Equal(t, int64(0), Cost(closedTiers(), 0))
	require.Equal(t, int64(0), Cost(closedTiers(), -25))
}

func TestCostOpenEndedBracket(t *testing.T) {
	// 100*100 + 400*150 + 100*250.
	require.Equal(t, int64(95000), Cost(openTiers(), 600))
}

func TestCostBeyondLastClosedBracket(t *testing.T) {
	// Without an open top bracket, usage past the table prices only
	// the covered units.
	require.Equal(t, int64(70000), Cost(closedTiers(), 900))
}

func TestCostSingleBracket(t *testing.T) {
	require.Equal(t, int64(4200), Cost(openTiers(), 42))
}

func TestValidateTiers(t *testing.T) {
	end := int64(100)
	badEnd := int64(50)

	require.NoError(t, ValidateTiers(openTiers()))
	require.NoError(t, ValidateTiers(closedTiers()))

	require.Error(t, ValidateTiers(nil))
	require.Error(t, ValidateTiers([]RateTier{
		{StartUsage: 10, EndUsage: &end, UnitAmountCents: 100},
	}), "first tier must start at zero")
	require.Error(t, ValidateTiers([]RateTier{
		{StartUsage: 0, EndUsage: nil, UnitAmountCents: 100},
		{StartUsage: 100, EndUsage: nil, UnitAmountCents: 150},
	}), "open tier must be last")
	require.Error(t, ValidateTiers([]RateTier{
		{StartUsage: 0, EndUsage: &end, UnitAmountCents: 100},
		{StartUsage: 200, EndUsage: nil, UnitAmountCents: 150},
	}), "brackets must be contiguous")
	require.Error(t, ValidateTiers([]RateTier{
		{StartUsage: 60, EndUsage: &badEnd, UnitAmountCents: 100},
	}), "end must be after start")
	require.Error(t, ValidateTiers([]RateTier{
		{StartUsage: 0, EndUsage: &end, UnitAmountCents: -5},
	}), "unit amount cannot be negative")
}

func TestTariffConfigValidate(t *testing.T) {
	cfg := TariffConfig{EBS: openTiers(), SWM: closedTiers()}
	require.NoError(t, cfg.Validate())

	cfg.SWM = nil
	require.Error(t, cfg.Validate())
}
