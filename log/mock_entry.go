package log

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// NewMockEntry returns a trace level entry whose output is discarded
// and a hook recording everything logged through it
func NewMockEntry() (*logrus.Entry, *MockLoggerHook) {
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	hook := &MockLoggerHook{}
	hook.On("Fire", mock.Anything).Return(nil)

	logger.AddHook(hook)

	return logrus.NewEntry(logger), hook
}

// MockLoggerHook records fired entries. Messages holds the plain messages in order.
type MockLoggerHook struct {
	mock.Mock

	Messages []string

	mu      sync.Mutex
	entries []logrus.Entry
}

// Levels implements `logrus.Hook`.
func (h *MockLoggerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements `logrus.Hook`.
func (h *MockLoggerHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = append(h.Messages, entry.Message)
	h.entries = append(h.entries, *entry)

	return h.Called(entry).Error(0)
}

// MessagesAt returns the messages logged with the given level
func (h *MockLoggerHook) MessagesAt(level logrus.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var res []string

	for _, e := range h.entries {
		if e.Level == level {
			res = append(res, e.Message)
		}
	}

	return res
}

// Reset forgets all recorded entries
func (h *MockLoggerHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = nil
	h.entries = nil
}
