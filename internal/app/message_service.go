package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

const timelineSize = 100

type MessageService struct {
	messageRepo *repository.MessageRepository
	effects     Effects
}

func NewMessageService(messageRepo *repository.MessageRepository, effects Effects) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		effects:     effects,
	}
}

func (s *MessageService) Post(ctx context.Context, userID uint, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > model.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	msg := &model.Message{Text: text, UserID: userID}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	id := msg.ID
	s.effects.invalidate(ctx, userID)
	s.effects.publish(ctx, model.Activity{ActorID: userID, Kind: model.ActivityPosted, MessageID: &id})
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, id uint) (*model.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// Delete removes a message on behalf of actorID, who must own it.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) (*model.Message, error) {
	msg, err := s.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.UserID != actorID {
		return nil, ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(ctx, msg.ID); err != nil {
		return nil, err
	}
	s.effects.invalidate(ctx, msg.UserID)
	return msg, nil
}

func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Message, error) {
	return s.messageRepo.ListByUserID(ctx, userID, limit)
}

// Timeline is the home page feed: the user's own messages and those of the
// users they follow.
func (s *MessageService) Timeline(ctx context.Context, userID uint) ([]model.Message, error) {
	return s.messageRepo.Timeline(ctx, userID, timelineSize)
}
