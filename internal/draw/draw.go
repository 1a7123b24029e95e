package draw

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/starwheel/internal/models"
)

// Split holds the fraction of the pool paid to each winning role
type Split struct {
	Center decimal.Decimal
	Side   decimal.Decimal
}

// DefaultSplit pays half the pool to the center and a quarter to each neighbour
func DefaultSplit() Split {
	return Split{
		Center: decimal.RequireFromString("0.5"),
		Side:   decimal.RequireFromString("0.25"),
	}
}

// ParseSplit builds a split from decimal strings such as "0.5"
func ParseSplit(center, side string) (Split, error) {
	c, err := decimal.NewFromString(center)
	if err != nil {
		return Split{}, ErrInvalidSplit
	}
	s, err := decimal.NewFromString(side)
	if err != nil {
		return Split{}, ErrInvalidSplit
	}
	split := Split{Center: c, Side: s}
	if err := split.Validate(); err != nil {
		return Split{}, err
	}
	return split, nil
}

// Validate rejects negative fractions and splits that pay out more than the pool
func (s Split) Validate() error {
	if s.Center.IsNegative() || s.Side.IsNegative() {
		return ErrInvalidSplit
	}
	if s.Center.Add(s.Side.Mul(decimal.NewFromInt(2))).GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidSplit
	}
	return nil
}

// Prizes returns the floored center and side prize for a pool
func (s Split) Prizes(pool int64) (center, side int64) {
	p := decimal.NewFromInt(pool)
	return p.Mul(s.Center).Floor().IntPart(), p.Mul(s.Side).Floor().IntPart()
}

// Neighbours returns the numbers either side of center on a wheel of capacity numbers
func Neighbours(center, capacity int) (left, right int) {
	left = center - 1
	if left < 1 {
		left = capacity
	}
	right = center + 1
	if right > capacity {
		right = 1
	}
	return left, right
}

// WinningNumbers draws a uniform center in [1, capacity] and its neighbours
func WinningNumbers(capacity int, src Source) (models.WinningNumbers, error) {
	if capacity < 1 {
		return models.WinningNumbers{}, ErrInvalidCapacity
	}
	center := src.Intn(capacity) + 1
	left, right := Neighbours(center, capacity)
	return models.WinningNumbers{Center: center, Left: left, Right: right}, nil
}

// PickFreeNumber returns a number in [1, capacity] not present in used, each
// free number being equally likely
func PickFreeNumber(capacity int, used map[int]bool, src Source) (int, error) {
	if capacity < 1 {
		return 0, ErrInvalidCapacity
	}
	free := make([]int, 0, capacity)
	for n := 1; n <= capacity; n++ {
		if !used[n] {
			free = append(free, n)
		}
	}
	if len(free) == 0 {
		return 0, ErrNoFreeNumber
	}
	return free[src.Intn(len(free))], nil
}

// Resolve matches the roster against the winning numbers. Payouts follow
// roster order. The flooring remainder is not redistributed.
func Resolve(entries []models.Entry, numbers models.WinningNumbers, pool int64, split Split) []models.Payout {
	center, side := split.Prizes(pool)

	payouts := make([]models.Payout, 0, 3)
	for _, e := range entries {
		var role models.PrizeRole
		var share int64
		switch e.Number {
		case numbers.Center:
			role, share = models.PrizeRoleCenter, center
		case numbers.Left:
			role, share = models.PrizeRoleLeft, side
		case numbers.Right:
			role, share = models.PrizeRoleRight, side
		default:
			continue
		}
		payouts = append(payouts, models.Payout{
			PlayerID:   e.PlayerID,
			PrizeShare: share,
			Role:       role,
			Number:     e.Number,
			Bot:        e.Bot,
		})
	}
	return payouts
}
