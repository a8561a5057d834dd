package storage

import (
	"errors"
	"log"

	"roomchat/backend/internal/models"

	"gorm.io/gorm"
)

// HistoryLimit is the hard retention cap: after any write a room keeps at most
// this many messages, and history reads never return more.
const HistoryLimit = 100

// ErrRoomNotFound is returned when an operation names a room that is not in
// the catalog.
var ErrRoomNotFound = errors.New("room not found")

// Storage is the persistence surface used by the hub and the HTTP handlers.
// It is an interface so tests can substitute an in-memory double for the
// real database.
type Storage interface {
	CreateRoom(name string) (bool, error)
	RoomExists(name string) (bool, error)
	GetRoomByName(name string) (*models.Room, error)
	ListRooms() ([]models.Room, error)

	AppendMessage(roomName, username, text string) (*models.Message, error)
	History(roomName string) ([]models.Message, error)
	MessageCount(roomName string) (int64, error)
	MessageCounts() (map[string]int64, error)
}

// Service implements Storage on top of a single shared gorm handle. The handle
// is opened once in main and passed in explicitly.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateRoom inserts the room only if the name is absent. It reports whether a
// new row was created; an existing name is not an error.
func (s *Service) CreateRoom(name string) (bool, error) {
	var room models.Room

	result := s.DB.Where("name = ?", name).FirstOrCreate(&room, models.Room{Name: name})
	if result.Error != nil {
		log.Printf("ERROR: failed to create room %q: %v", name, result.Error)
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// RoomExists reports whether the named room is in the catalog.
func (s *Service) RoomExists(name string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Room{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRoomByName returns the room or ErrRoomNotFound.
func (s *Service) GetRoomByName(name string) (*models.Room, error) {
	var room models.Room

	err := s.DB.Where("name = ?", name).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		log.Printf("ERROR: failed to get room %q: %v", name, err)
		return nil, err
	}
	return &room, nil
}

// ListRooms returns every room in creation order.
func (s *Service) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("id ASC").Find(&rooms).Error; err != nil {
		log.Printf("ERROR: failed to list rooms: %v", err)
		return nil, err
	}
	return rooms, nil
}

// AppendMessage persists a message in the named room and then enforces the
// retention cap, so the stored log is bounded after every write. It returns
// the stored message with its assigned ID and timestamp.
func (s *Service) AppendMessage(roomName, username, text string) (*models.Message, error) {
	room, err := s.GetRoomByName(roomName)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		RoomID:   room.ID,
		Username: username,
		Text:     text,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: failed to save message for room %q: %v", roomName, err)
		return nil, err
	}

	if err := s.enforceRetention(room.ID); err != nil {
		log.Printf("ERROR: failed to enforce retention for room %q: %v", roomName, err)
		return nil, err
	}

	return &msg, nil
}

// enforceRetention deletes everything but the newest HistoryLimit messages of
// the room. Ties on created_at fall back to ID, keeping eviction deterministic.
func (s *Service) enforceRetention(roomID uint) error {
	keep := s.DB.Model(&models.Message{}).
		Select("id").
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Limit(HistoryLimit)

	return s.DB.
		Where("room_id = ? AND id NOT IN (?)", roomID, keep).
		Delete(&models.Message{}).Error
}

// History returns the room's persisted messages, oldest first, capped at
// HistoryLimit.
func (s *Service) History(roomName string) ([]models.Message, error) {
	room, err := s.GetRoomByName(roomName)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	err = s.DB.Where("room_id = ?", room.ID).
		Order("created_at ASC, id ASC").
		Limit(HistoryLimit).
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: failed to load history for room %q: %v", roomName, err)
		return nil, err
	}
	return messages, nil
}

// MessageCount returns the persisted message count for the named room.
func (s *Service) MessageCount(roomName string) (int64, error) {
	room, err := s.GetRoomByName(roomName)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.DB.Model(&models.Message{}).Where("room_id = ?", room.ID).Count(&count).Error; err != nil {
		log.Printf("ERROR: failed to count messages for room %q: %v", roomName, err)
		return 0, err
	}
	return count, nil
}

// MessageCounts returns the persisted message count for every room in one
// grouped query, keyed by room name. Rooms without messages are absent from
// the map; callers treat a missing key as zero.
func (s *Service) MessageCounts() (map[string]int64, error) {
	var rows []struct {
		Name  string
		Count int64
	}

	err := s.DB.Model(&models.Message{}).
		Select("rooms.name AS name, COUNT(messages.id) AS count").
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Group("rooms.name").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: failed to count messages per room: %v", err)
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Count
	}
	return counts, nil
}
