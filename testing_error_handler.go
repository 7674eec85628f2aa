package libemit

import (
	"github.com/stretchr/testify/mock"
)

type mockErrorHandler struct {
	mock.Mock

	tapHandle func(*ListenerError)
}

func (m *mockErrorHandler) Handle(err *ListenerError) {
	if m.tapHandle != nil {
		m.tapHandle(err)
	}
	m.Called(err)
}
