package station

import (
	"github.com/appetiteclub/floorsync/internal/supply"
)

// MockKitchen records calls and returns a canned error.
type MockKitchen struct {
	err   error
	calls []string
}

func (m *MockKitchen) Acknowledge(orderNumber, itemNumber int) error {
	m.calls = append(m.calls, "ack")
	return m.err
}

func (m *MockKitchen) Ready(orderNumber, itemNumber int) error {
	m.calls = append(m.calls, "ready")
	return m.err
}

func (m *MockKitchen) ConfirmDelivery(itemNumber int) error {
	m.calls = append(m.calls, "deliver")
	return m.err
}

type MockRequests struct {
	requests []supply.Request
}

func (m *MockRequests) Requests() []supply.Request {
	return m.requests
}
