package storage_test

import (
	"fmt"
	"testing"

	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupService creates a storage service backed by an in-memory SQLite database.
func setupService(t *testing.T) *storage.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Message{}))

	return storage.NewService(db)
}

func TestCreateRoom_Idempotent(t *testing.T) {
	s := setupService(t)

	created, err := s.CreateRoom("General")
	require.NoError(t, err)
	assert.True(t, created, "first create should report a new room")

	created, err = s.CreateRoom("General")
	require.NoError(t, err)
	assert.False(t, created, "second create should report the room already exists")

	rooms, err := s.ListRooms()
	require.NoError(t, err)
	assert.Len(t, rooms, 1, "catalog should gain exactly one entry")
}

func TestListRooms_CreationOrder(t *testing.T) {
	s := setupService(t)

	for _, name := range []string{"Zulu", "Alpha", "Mike"} {
		_, err := s.CreateRoom(name)
		require.NoError(t, err)
	}

	rooms, err := s.ListRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	names := []string{rooms[0].Name, rooms[1].Name, rooms[2].Name}
	assert.Equal(t, []string{"Zulu", "Alpha", "Mike"}, names, "rooms should list in creation order, not alphabetically")
}

func TestRoomExists(t *testing.T) {
	s := setupService(t)

	exists, err := s.RoomExists("General")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.CreateRoom("General")
	require.NoError(t, err)

	exists, err = s.RoomExists("General")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetRoomByName_NotFound(t *testing.T) {
	s := setupService(t)

	room, err := s.GetRoomByName("nowhere")
	assert.Nil(t, room)
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}

func TestAppendMessage_RoomMissing(t *testing.T) {
	s := setupService(t)

	msg, err := s.AppendMessage("nowhere", "Guest1", "hello")
	assert.Nil(t, msg)
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
}

func TestAppendAndHistory_RoundTrip(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateRoom("General")
	require.NoError(t, err)

	saved, err := s.AppendMessage("General", "Guest42", "hello there")
	require.NoError(t, err)
	assert.NotZero(t, saved.ID, "append should assign an ID")
	assert.False(t, saved.CreatedAt.IsZero(), "append should assign a timestamp")

	history, err := s.History("General")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Guest42", history[0].Username)
	assert.Equal(t, "hello there", history[0].Text)
	assert.Equal(t, saved.ID, history[0].ID)
}

func TestHistory_AscendingOrder(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateRoom("General")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.AppendMessage("General", "Guest1", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	history, err := s.History("General")
	require.NoError(t, err)
	require.Len(t, history, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("msg %d", i), history[i].Text)
	}
}

func TestRetention_CapsAtLimit(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateRoom("Busy")
	require.NoError(t, err)

	for i := 1; i <= storage.HistoryLimit+1; i++ {
		_, err := s.AppendMessage("Busy", "Guest1", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	count, err := s.MessageCount("Busy")
	require.NoError(t, err)
	assert.Equal(t, int64(storage.HistoryLimit), count, "count never exceeds the retention cap")

	history, err := s.History("Busy")
	require.NoError(t, err)
	require.Len(t, history, storage.HistoryLimit)
	assert.Equal(t, "msg 2", history[0].Text, "the oldest message should have been evicted")
	assert.Equal(t, fmt.Sprintf("msg %d", storage.HistoryLimit+1), history[len(history)-1].Text)
}

func TestRetention_ScopedPerRoom(t *testing.T) {
	s := setupService(t)

	for _, name := range []string{"Busy", "Quiet"} {
		_, err := s.CreateRoom(name)
		require.NoError(t, err)
	}

	_, err := s.AppendMessage("Quiet", "Guest2", "still here")
	require.NoError(t, err)

	for i := 0; i < storage.HistoryLimit+10; i++ {
		_, err := s.AppendMessage("Busy", "Guest1", "spam")
		require.NoError(t, err)
	}

	count, err := s.MessageCount("Quiet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "retention in one room must not touch another room's log")
}

func TestMessageCounts_GroupedByRoom(t *testing.T) {
	s := setupService(t)

	for _, name := range []string{"General", "Technology", "Empty"} {
		_, err := s.CreateRoom(name)
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		_, err := s.AppendMessage("General", "Guest1", "hi")
		require.NoError(t, err)
	}
	_, err := s.AppendMessage("Technology", "Guest2", "hi")
	require.NoError(t, err)

	counts, err := s.MessageCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["General"])
	assert.Equal(t, int64(1), counts["Technology"])
	assert.Zero(t, counts["Empty"], "rooms without messages read as zero")
}
