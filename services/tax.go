package services

// TaxBracket applies Percent to the whole gross pay once gross pay is
// strictly greater than Threshold.
type TaxBracket struct {
	Threshold float64
	Percent   float64
}

// DefaultTaxBrackets is ordered by descending threshold. Pay at or below the
// lowest threshold is untaxed.
var DefaultTaxBrackets = []TaxBracket{
	{Threshold: 2400000, Percent: 30},
	{Threshold: 2000000, Percent: 25},
	{Threshold: 1600000, Percent: 20},
	{Threshold: 1200000, Percent: 15},
	{Threshold: 800000, Percent: 10},
	{Threshold: 400000, Percent: 5},
}

// TaxPolicy is a flat-rate bracket table: the first bracket whose threshold
// gross pay exceeds sets the rate for the entire amount. This is not a
// marginal schedule.
type TaxPolicy struct {
	brackets []TaxBracket
}

func NewTaxPolicy(brackets []TaxBracket) TaxPolicy {
	return TaxPolicy{brackets: brackets}
}

func DefaultTaxPolicy() TaxPolicy {
	return NewTaxPolicy(DefaultTaxBrackets)
}

// Rate returns the percent applied to grossPay. A gross pay equal to a
// threshold falls into the next lower bracket.
func (p TaxPolicy) Rate(grossPay float64) float64 {
	for _, b := range p.brackets {
		if grossPay > b.Threshold {
			return b.Percent
		}
	}
	return 0
}

// Deduct returns the tax owed on grossPay.
func (p TaxPolicy) Deduct(grossPay float64) float64 {
	rate := p.Rate(grossPay)
	if rate == 0 {
		return 0
	}
	return grossPay * rate / 100
}
