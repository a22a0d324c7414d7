package service

import (
	"context"
	"fmt"
	"time"

	"hotstock/internal/model"
	"hotstock/internal/repository"
	"hotstock/pkg/cache"
	"hotstock/pkg/common"
	"hotstock/pkg/logger"
	"hotstock/pkg/utils"
)

// Dislike count at which a tag is hidden for good.
const tagHideThreshold = 5

const suggestCacheDuration = 10 * time.Minute

const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

type TagService interface {
	ListVisible(ctx context.Context, symbol string) ([]model.Tag, error)
	GetByID(ctx context.Context, id uint) (*model.Tag, error)
	Create(ctx context.Context, symbol, content string) (*model.Tag, error)
	Vote(ctx context.Context, id uint, kind string) error
	Suggest(ctx context.Context, symbol string) ([]model.Tag, error)
}

type tagService struct {
	log        *logger.Logger
	cache      cache.Cache
	stockRepo  repository.StockRepository
	tagRepo    repository.TagRepository
	classifier repository.ClassifierRepository
}

func NewTagService(
	log *logger.Logger,
	inmemoryCache cache.Cache,
	stockRepo repository.StockRepository,
	tagRepo repository.TagRepository,
	classifier repository.ClassifierRepository,
) TagService {
	return &tagService{
		log:        log,
		cache:      inmemoryCache,
		stockRepo:  stockRepo,
		tagRepo:    tagRepo,
		classifier: classifier,
	}
}

func (s *tagService) ListVisible(ctx context.Context, symbol string) ([]model.Tag, error) {
	return s.tagRepo.GetVisibleBySymbol(ctx, symbol)
}

func (s *tagService) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// Create writes a new visible tag after the classifier accepts the text. A
// declined verdict returns ContentRejectedError with the classifier's reason
// and writes nothing; a classifier failure rejects the whole creation.
func (s *tagService) Create(ctx context.Context, symbol, content string) (*model.Tag, error) {
	if _, err := s.stockRepo.GetBySymbol(ctx, symbol); err != nil {
		return nil, err
	}

	content = utils.CleanToValidUTF8(content)

	validation, err := s.classifier.ValidateTag(ctx, content)
	if err != nil {
		s.log.ErrorContext(ctx, "tag validation call failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("%w: tag validation: %v", common.ErrUpstreamUnavailable, err)
	}

	if !validation.IsValid {
		return nil, &common.ContentRejectedError{Reason: validation.Reason}
	}

	tag := &model.Tag{
		StockSymbol: symbol,
		Content:     content,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// Vote applies one like or dislike. The dislike path hides the tag in the
// same statement once the threshold is reached; there is no un-hide.
func (s *tagService) Vote(ctx context.Context, id uint, kind string) error {
	switch kind {
	case VoteLike:
		return s.tagRepo.AddLike(ctx, id)
	case VoteDislike:
		return s.tagRepo.AddDislike(ctx, id, tagHideThreshold)
	default:
		return fmt.Errorf("%w: unknown vote type %q", common.ErrInvalidInput, kind)
	}
}

// Suggest asks the classifier for candidate tags and creates each one through
// the same gate as Create. Candidates the classifier rejects are skipped
// silently; the caller only observes the resulting visible tag set.
func (s *tagService) Suggest(ctx context.Context, symbol string) ([]model.Tag, error) {
	cacheKey := fmt.Sprintf(common.KEY_SUGGEST_TAGS, symbol)
	if cached, found := s.cache.Get(cacheKey); found {
		if tags, ok := cached.([]model.Tag); ok {
			return tags, nil
		}
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.classifier.SuggestTags(ctx, stock.Symbol, stock.Name)
	if err != nil {
		s.log.ErrorContext(ctx, "tag suggestion call failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("%w: tag suggestion: %v", common.ErrUpstreamUnavailable, err)
	}

	for _, candidate := range suggestion.Tags {
		if _, err := s.Create(ctx, symbol, candidate); err != nil {
			s.log.DebugContext(ctx, "suggested tag skipped",
				logger.StringField("symbol", symbol),
				logger.StringField("candidate", candidate),
				logger.ErrorField(err),
			)
		}
	}

	tags, err := s.tagRepo.GetVisibleBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, tags, suggestCacheDuration)
	return tags, nil
}
