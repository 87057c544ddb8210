package restaurant

import "fmt"

const (
	DefaultThreshold     = 20
	DefaultRequestAmount = 20
)

// Supply is one stocked ingredient. Threshold is the total quantity the
// restaurant wants on hand; RequestAmount is the restock batch size.
type Supply struct {
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	Threshold     int    `json:"threshold"`
	RequestAmount int    `json:"request_amount"`
}

func NewSupply(name string, quantity int) *Supply {
	return &Supply{
		Name:          name,
		Quantity:      quantity,
		Threshold:     DefaultThreshold,
		RequestAmount: DefaultRequestAmount,
	}
}

func (s *Supply) Category() Category { return CategorySupply }

func (s *Supply) Key() string { return s.Name }

// RequestNeeded returns the smallest multiple of RequestAmount that brings
// Quantity up to Threshold, or 0 when stock is sufficient or the request
// amount is not positive.
func (s *Supply) RequestNeeded() int {
	deficit := s.Threshold - s.Quantity
	if deficit <= 0 || s.RequestAmount <= 0 {
		return 0
	}
	batches := (deficit + s.RequestAmount - 1) / s.RequestAmount
	return batches * s.RequestAmount
}

func (s *Supply) String() string {
	return fmt.Sprintf("%s (%d/%d)", s.Name, s.Quantity, s.Threshold)
}

func (s *Supply) Clone() *Supply {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
