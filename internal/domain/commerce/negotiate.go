package commerce

import (
	"fmt"
	"math"
)

// NegotiateDeal settles the delivery of load between seller and buyer and
// returns the exchange load sized by DetermineLoad(buyer, seller).
//
// The load's value at the seller, scaled by tradeModifier, is credited to
// buyer's balance with seller. While that balance is at least
// -SellCreditLimit the exchange load is built and its value at the buyer,
// divided by tradeModifier, is debited again. Otherwise the exchange load
// is empty.
func (f *Finder) NegotiateDeal(seller, buyer Settlement, vehicle Vehicle, tradeModifier float64, load Load) (LoadResult, error) {
	if tradeModifier <= 0 {
		return LoadResult{}, fmt.Errorf("%w: %v", ErrInvalidTradeModifier, tradeModifier)
	}

	baseSold, err := f.DetermineLoadCredit(load, seller, true)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to price sold load: %w", err)
	}

	credit := f.credit.GetCredit(buyer.ID(), seller.ID()) + baseSold*tradeModifier
	if err := f.credit.SetCredit(buyer.ID(), seller.ID(), credit); err != nil {
		return LoadResult{}, err
	}

	if credit < -f.cfg.SellCreditLimit {
		return LoadResult{Load: Load{}}, nil
	}

	result := f.DetermineLoad(buyer, seller, vehicle, math.Inf(1))
	baseBought, err := f.DetermineLoadCredit(result.Load, buyer, true)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to price return load: %w", err)
	}

	credit -= baseBought / tradeModifier
	if err := f.credit.SetCredit(buyer.ID(), seller.ID(), credit); err != nil {
		return LoadResult{}, err
	}
	return result, nil
}
