package service

import (
	"context"
	"fmt"
	"time"

	"hotstock/internal/dto"
	"hotstock/internal/hub"
	"hotstock/internal/model"
	"hotstock/internal/repository"
	"hotstock/pkg/logger"
	"hotstock/pkg/utils"
)

const danmakuHistoryLimit = 50

type DanmakuService interface {
	Publish(ctx context.Context, symbol string, userID uint, content string) (*dto.DanmakuPayload, error)
	History(ctx context.Context, symbol string) ([]model.DanmakuWithUser, error)
}

type danmakuService struct {
	log         *logger.Logger
	danmakuRepo repository.DanmakuRepository
	userRepo    repository.UserRepository
	broadcaster hub.Broadcaster
}

func NewDanmakuService(
	log *logger.Logger,
	danmakuRepo repository.DanmakuRepository,
	userRepo repository.UserRepository,
	broadcaster hub.Broadcaster,
) DanmakuService {
	return &danmakuService{
		log:         log,
		danmakuRepo: danmakuRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

// Publish assigns the creation timestamp, persists the comment, then fans the
// event out to every open connection. The broadcast echoes the submitted
// fields together with the persisted id.
func (s *danmakuService) Publish(ctx context.Context, symbol string, userID uint, content string) (*dto.DanmakuPayload, error) {
	danmaku := &model.Danmaku{
		StockSymbol: symbol,
		UserID:      userID,
		Content:     utils.CleanToValidUTF8(content),
		Timestamp:   time.Now().UnixMilli(),
	}
	if err := s.danmakuRepo.Create(ctx, danmaku); err != nil {
		return nil, fmt.Errorf("failed to persist danmaku: %w", err)
	}

	username := fmt.Sprintf("User_%d", userID)
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		username = user.Username
	}

	payload := dto.DanmakuPayload{
		ID:          danmaku.ID,
		StockSymbol: danmaku.StockSymbol,
		UserID:      danmaku.UserID,
		Content:     danmaku.Content,
		Timestamp:   danmaku.Timestamp,
		Username:    username,
	}
	s.broadcaster.Broadcast(dto.NewDanmakuEvent(payload))

	return &payload, nil
}

// History returns the most recent comments for one stock, newest first.
func (s *danmakuService) History(ctx context.Context, symbol string) ([]model.DanmakuWithUser, error) {
	return s.danmakuRepo.HistoryBySymbol(ctx, symbol, danmakuHistoryLimit)
}
