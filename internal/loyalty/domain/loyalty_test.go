package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	var s State
	s.RecordPurchase(3)
	s.RecordPurchase(5)

	assert.Equal(t, 8, s.BeverageCount)
	assert.Equal(t, 0, s.DonationProgress())
	assert.Equal(t, 1, s.FreeBeveragesEarned())
	assert.True(t, s.RewardReached())

	s.RecordPurchase(0)
	s.RecordPurchase(-4)
	assert.Equal(t, 8, s.BeverageCount)
}

func TestAwardPoints(t *testing.T) {
	s := State{Points: 125}
	s.AwardPoints(10)

	assert.Equal(t, 135, s.Points)
	assert.Equal(t, 1, s.DiscountsAvailable())
	assert.Equal(t, 65, s.PointsToNextDiscount())
	assert.Equal(t, 35, s.DiscountProgress())

	s.AwardPoints(-10)
	assert.Equal(t, 135, s.Points)
}

func TestDerivedAtBoundaries(t *testing.T) {
	zero := State{}
	assert.Equal(t, 0, zero.DiscountsAvailable())
	assert.Equal(t, 100, zero.PointsToNextDiscount())
	assert.Equal(t, 8, zero.CupsToNextReward())
	assert.False(t, zero.RewardReached())

	even := State{Points: 200, BeverageCount: 3}
	assert.Equal(t, 2, even.DiscountsAvailable())
	assert.Equal(t, 100, even.PointsToNextDiscount())
	assert.Equal(t, 3, even.DonationProgress())
	assert.Equal(t, 5, even.CupsToNextReward())
}

func TestSummary(t *testing.T) {
	got := State{BeverageCount: 11, Points: 250}.Summary()
	assert.Equal(t, Summary{
		BeverageCount:        11,
		Points:               250,
		DiscountsAvailable:   2,
		PointsToNextDiscount: 50,
		DiscountProgress:     50,
		DonationProgress:     3,
		FreeBeveragesEarned:  1,
		CupsToNextReward:     5,
	}, got)
}
