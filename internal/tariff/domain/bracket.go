package domain

import (
	"errors"
	"fmt"
)

// Cost prices usage progressively: each bracket charges only the
// units that fall inside it, so 150 units against [0,100)@100c and
// [100,500)@150c costs 100*100 + 50*150 = 17500 cents.
//
// Negative usage prices as zero. Usage beyond the last closed bracket
// is uncovered and contributes nothing unless the table ends with an
// open bracket.
func Cost(tiers []RateTier, usage int64) int64 {
	if usage <= 0 {
		return 0
	}

	var total int64
	for _, tier := range tiers {
		if usage <= tier.StartUsage {
			break
		}
		upper := usage
		if tier.EndUsage != nil && *tier.EndUsage < upper {
			upper = *tier.EndUsage
		}
		units := upper - tier.StartUsage
		if units <= 0 {
			continue
		}
		total += units * tier.UnitAmountCents
	}
	return total
}

// ValidateTiers rejects tables that would price some usage ranges
// ambiguously or not at all.
func ValidateTiers(tiers []RateTier) error {
	if len(tiers) == 0 {
		return errors.New("tariff table cannot be empty")
	}
	if tiers[0].StartUsage != 0 {
		return fmt.Errorf("first tier must start at 0, got %d", tiers[0].StartUsage)
	}
	for i, tier := range tiers {
		if tier.UnitAmountCents < 0 {
			return fmt.Errorf("tier %d has negative unit amount", i)
		}
		if tier.EndUsage == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("tier %d is open-ended but not last", i)
			}
			continue
		}
		if *tier.EndUsage <= tier.StartUsage {
			return fmt.Errorf("tier %d has end %d not after start %d", i, *tier.EndUsage, tier.StartUsage)
		}
		if i+1 < len(tiers) && tiers[i+1].StartUsage != *tier.EndUsage {
			return fmt.Errorf("tier %d end %d does not meet tier %d start %d", i, *tier.EndUsage, i+1, tiers[i+1].StartUsage)
		}
	}
	return nil
}

// Validate checks both utility tables.
func (c TariffConfig) Validate() error {
	if err := ValidateTiers(c.EBS); err != nil {
		return fmt.Errorf("ebs: %w", err)
	}
	if err := ValidateTiers(c.SWM); err != nil {
		return fmt.Errorf("swm: %w", err)
	}
	return nil
}
