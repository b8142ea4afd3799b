package app

// PointsAwarder credits the completion bonus.
type PointsAwarder interface {
	AwardPoints(amount int)
}
