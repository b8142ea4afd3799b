// Package domain holds the loyalty counters earned through purchases and
// mini-games. Both counters only ever grow.
package domain

const (
	PointsPerDiscount    = 100
	BeveragesPerDonation = 8

	// GameBonus is awarded for every completed mini-game session.
	GameBonus = 10
)

type State struct {
	BeverageCount int
	Points        int
}

func (s *State) RecordPurchase(quantity int) {
	if quantity <= 0 {
		return
	}
	s.BeverageCount += quantity
}

func (s *State) AwardPoints(amount int) {
	if amount <= 0 {
		return
	}
	s.Points += amount
}

func (s State) DiscountsAvailable() int {
	return s.Points / PointsPerDiscount
}

func (s State) PointsToNextDiscount() int {
	return PointsPerDiscount - s.Points%PointsPerDiscount
}

// DiscountProgress is the percentage toward the next discount.
func (s State) DiscountProgress() int {
	return s.Points % PointsPerDiscount * 100 / PointsPerDiscount
}

func (s State) DonationProgress() int {
	return s.BeverageCount % BeveragesPerDonation
}

func (s State) FreeBeveragesEarned() int {
	return s.BeverageCount / BeveragesPerDonation
}

func (s State) CupsToNextReward() int {
	return BeveragesPerDonation - s.DonationProgress()
}

// RewardReached is true right after a purchase completes a card of eight.
func (s State) RewardReached() bool {
	return s.BeverageCount > 0 && s.DonationProgress() == 0
}

type Summary struct {
	BeverageCount        int `json:"beverage_count"`
	Points               int `json:"points"`
	DiscountsAvailable   int `json:"discounts_available"`
	PointsToNextDiscount int `json:"points_to_next_discount"`
	DiscountProgress     int `json:"discount_progress"`
	DonationProgress     int `json:"donation_progress"`
	FreeBeveragesEarned  int `json:"free_beverages_earned"`
	CupsToNextReward     int `json:"cups_to_next_reward"`
}

func (s State) Summary() Summary {
	return Summary{
		BeverageCount:        s.BeverageCount,
		Points:               s.Points,
		DiscountsAvailable:   s.DiscountsAvailable(),
		PointsToNextDiscount: s.PointsToNextDiscount(),
		DiscountProgress:     s.DiscountProgress(),
		DonationProgress:     s.DonationProgress(),
		FreeBeveragesEarned:  s.FreeBeveragesEarned(),
		CupsToNextReward:     s.CupsToNextReward(),
	}
}
