package inventory

import (
	"encoding/json"

	"gymdesk/internal/gym"
)

// Stock is the per-branch quantity of one product. The quantities are only
// reachable through a branch, so a change made on behalf of one branch cannot
// touch the other.
type Stock struct {
	male   int
	female int
}

func NewStock(male, female int) Stock {
	return Stock{male: male, female: female}
}

// Of returns the quantity held by branch; unknown branches hold nothing.
func (s Stock) Of(branch gym.Branch) int {
	switch branch {
	case gym.BranchMale:
		return s.male
	case gym.BranchFemale:
		return s.female
	}
	return 0
}

// Adjust adds delta to branch's quantity and reports whether branch was known.
func (s *Stock) Adjust(branch gym.Branch, delta int) bool {
	switch branch {
	case gym.BranchMale:
		s.male += delta
	case gym.BranchFemale:
		s.female += delta
	default:
		return false
	}
	return true
}

func (s Stock) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[gym.Branch]int{
		gym.BranchMale:   s.male,
		gym.BranchFemale: s.female,
	})
}

// QuantityColumn names the products column holding branch's stock.
func QuantityColumn(branch gym.Branch) (string, bool) {
	switch branch {
	case gym.BranchMale:
		return "male_gym_quantity", true
	case gym.BranchFemale:
		return "female_gym_quantity", true
	}
	return "", false
}
