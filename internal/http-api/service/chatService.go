package service

import (
	"context"
	"errors"
	"strings"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrRoomNotFound   = errors.New("chat room not found")
	ErrRoomNameInUse  = errors.New("chat room name already in use")
	ErrNotRoomCreator = errors.New("only admins can manage chat rooms")
	ErrNotModerator   = errors.New("only admins can moderate chat messages")
)

type ChatService interface {
	CreateRoom(ctx context.Context, role string, req *dto.CreateRoomDTO) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	History(ctx context.Context, roomID string, limit int) ([]dto.ChatMessageResponse, error)
	// UserHistory and DeleteMessage are the moderation surface, admin only.
	UserHistory(ctx context.Context, role, userID string, limit int) ([]dto.ChatMessageResponse, error)
	DeleteMessage(ctx context.Context, role string, messageID int64) error
}

type chatService struct {
	roomRepo    repository.ChatRoomRepository
	messageRepo repository.ChatMessageRepository
}

func NewChatService(roomRepo repository.ChatRoomRepository, messageRepo repository.ChatMessageRepository) ChatService {
	return &chatService{roomRepo: roomRepo, messageRepo: messageRepo}
}

func (s *chatService) CreateRoom(ctx context.Context, role string, req *dto.CreateRoomDTO) (*dto.RoomResponse, error) {
	if role != models.RoleAdmin {
		return nil, ErrNotRoomCreator
	}

	room := &models.ChatRoom{
		Name:        strings.TrimSpace(req.Name),
		Topic:       req.Topic,
		Description: req.Description,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrRoomNameInUse
		}
		return nil, err
	}
	return dto.FromModelToRoomResponse(room), nil
}

func (s *chatService) GetRoom(ctx context.Context, roomID string) (*dto.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return dto.FromModelToRoomResponse(room), nil
}

func (s *chatService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, *dto.FromModelToRoomResponse(&rooms[i]))
	}
	return responses, nil
}

// History returns the last messages of a room in chronological order so
// clients can render them top-down without re-sorting.
func (s *chatService) History(ctx context.Context, roomID string, limit int) ([]dto.ChatMessageResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	messages, err := s.messageRepo.GetByRoomID(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}

	// Repository hands back newest first
	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		responses = append(responses, *dto.FromModelToChatMessageResponse(&messages[i]))
	}
	return responses, nil
}

func (s *chatService) UserHistory(ctx context.Context, role, userID string, limit int) ([]dto.ChatMessageResponse, error) {
	if role != models.RoleAdmin {
		return nil, ErrNotModerator
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	messages, err := s.messageRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *dto.FromModelToChatMessageResponse(&messages[i]))
	}
	return responses, nil
}

func (s *chatService) DeleteMessage(ctx context.Context, role string, messageID int64) error {
	if role != models.RoleAdmin {
		return ErrNotModerator
	}
	return s.messageRepo.DeleteByID(ctx, messageID)
}
