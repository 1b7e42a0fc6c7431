package search

import (
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify mock of Provider.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: e, query.
func (_m *MockProvider) Match(e domain.Employee, query string) bool {
	ret := _m.Called(e, query)

	if rf, ok := ret.Get(0).(func(domain.Employee, string) bool); ok {
		return rf(e, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with no fields.
func (_m *MockProvider) Name() string {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() string); ok {
		return rf()
	}
	return ret.String(0)
}
