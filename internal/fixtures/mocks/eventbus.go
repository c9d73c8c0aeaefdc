package mocks

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/stretchr/testify/mock"
)

// MockBus is a testify double of eventbus.Bus.
type MockBus struct {
	mock.Mock
}

func NewMockBus(t testingT) *MockBus {
	m := &MockBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

func (m *MockBus) Emit(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}
