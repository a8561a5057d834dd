package chathub_test

import (
	"roomchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock implementation of the storage.Storage
// interface, letting hub tests run without a database.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateRoom(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) RoomExists(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetRoomByName(name string) (*models.Room, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) ListRooms() ([]models.Room, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockStorage) AppendMessage(roomName, username, text string) (*models.Message, error) {
	args := m.Called(roomName, username, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) History(roomName string) ([]models.Message, error) {
	args := m.Called(roomName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MessageCount(roomName string) (int64, error) {
	args := m.Called(roomName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MessageCounts() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// mockClient is a test double for the chathub.Client interface. Its send
// channel is buffered so the hub never blocks in tests.
type mockClient struct {
	id       string
	username string
	roomID   string
	send     chan models.ServerEvent
	closed   bool
}

func newMockClient(id, username string) *mockClient {
	return &mockClient{
		id:       id,
		username: username,
		send:     make(chan models.ServerEvent, 32),
	}
}

func (c *mockClient) GetID() string                                  { return c.id }
func (c *mockClient) GetUsername() string                            { return c.username }
func (c *mockClient) GetRoomID() string                              { return c.roomID }
func (c *mockClient) SetRoomID(id string)                            { c.roomID = id }
func (c *mockClient) GetSendChannel() chan<- models.ServerEvent      { return c.send }
func (c *mockClient) Run()                                           {}
func (c *mockClient) Close()                                         { c.closed = true }

// events drains everything the hub has queued for this client so far.
func (c *mockClient) events() []models.ServerEvent {
	var out []models.ServerEvent
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// eventNames is a convenience for asserting the order of queued events.
func (c *mockClient) eventNames() []string {
	evs := c.events()
	names := make([]string, 0, len(evs))
	for _, ev := range evs {
		names = append(names, ev.Event)
	}
	return names
}
