package character

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/character/dto"
	repository "github.com/zihui-app/zihui/internal/modules/character/repository"
	progressRepo "github.com/zihui-app/zihui/internal/modules/progress/repository"
	"github.com/zihui-app/zihui/internal/search"
	"github.com/zihui-app/zihui/pkg/apperror"
	"github.com/zihui-app/zihui/pkg/logger"
	"github.com/zihui-app/zihui/pkg/pinyin"
	"gorm.io/gorm"
)

const characterCacheTTL = 24 * time.Hour

type Service interface {
	GetByIndex(ctx context.Context, index int) (*entity.Character, error)
	GetRange(ctx context.Context, start, count int) ([]entity.Character, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Character, error)
	GetFiltered(ctx context.Context, userID uuid.UUID, page, pageSize int, opts dto.FilterOptions) (*dto.FilteredCharactersResponse, error)
}

type characterService struct {
	repo         repository.CharacterRepository
	progressRepo progressRepo.ProgressRepository

	// Both optional; nil disables the feature.
	catalogIndex search.CatalogIndex
	redisClient  *redis.Client

	// The catalog is immutable after seeding, so one snapshot serves all
	// in-process search and filter evaluation. Mastery state is never part
	// of the snapshot; it is fetched live on every filtered query.
	mu       sync.Mutex
	snapshot []entity.Character
}

func NewCharacterService(
	repo repository.CharacterRepository,
	progressRepo progressRepo.ProgressRepository,
	catalogIndex search.CatalogIndex,
	redisClient *redis.Client,
) Service {
	return &characterService{
		repo:         repo,
		progressRepo: progressRepo,
		catalogIndex: catalogIndex,
		redisClient:  redisClient,
	}
}

func (s *characterService) GetByIndex(ctx context.Context, index int) (*entity.Character, error) {
	cacheKey := fmt.Sprintf("character:%d", index)

	if s.redisClient != nil {
		if data, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
			var character entity.Character
			if json.Unmarshal(data, &character) == nil {
				return &character, nil
			}
		}
	}

	character, err := s.repo.FindByIndex(ctx, index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(character); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, data, characterCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache character", logger.Int("index", index), logger.ErrorField(err))
			}
		}
	}

	return character, nil
}

// GetRange returns the characters with indices in [start, start+count),
// ascending. The count is silently truncated at the catalog size bound;
// a partially seeded catalog simply yields fewer rows.
func (s *characterService) GetRange(ctx context.Context, start, count int) ([]entity.Character, error) {
	if start+count > entity.CatalogSizeBound {
		count = entity.CatalogSizeBound - start
	}

	return s.repo.FindRange(ctx, start, count)
}

// Search matches the term case-insensitively against simplified and
// traditional forms, definitions, and pinyin (tone-insensitively), in
// catalog order. A blank term yields an empty result.
func (s *characterService) Search(ctx context.Context, term string, limit int) ([]entity.Character, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.Character{}, nil
	}

	if s.catalogIndex != nil {
		results, err := s.searchViaIndex(ctx, term, limit)
		if err == nil {
			return results, nil
		}
		logger.Warn("search index unavailable, falling back to catalog scan", logger.ErrorField(err))
	}

	return s.scanCatalog(ctx, term, limit)
}

func (s *characterService) searchViaIndex(ctx context.Context, term string, limit int) ([]entity.Character, error) {
	indices, err := s.catalogIndex.Search(term, limit)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int]*entity.Character, len(catalog))
	for i := range catalog {
		byIndex[catalog[i].Index] = &catalog[i]
	}

	results := make([]entity.Character, 0, len(indices))
	for _, index := range indices {
		if ch, ok := byIndex[index]; ok {
			results = append(results, *ch)
		}
	}
	return results, nil
}

func (s *characterService) scanCatalog(ctx context.Context, term string, limit int) ([]entity.Character, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(term)
	normalized := pinyin.Normalize(term)

	results := []entity.Character{}
	for _, ch := range catalog {
		if matches(&ch, lowered, normalized) {
			results = append(results, ch)
			if len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

func matches(ch *entity.Character, lowered, normalized string) bool {
	if strings.Contains(ch.Simplified, lowered) || strings.Contains(ch.Traditional, lowered) {
		return true
	}
	for _, variant := range ch.TraditionalVariants {
		if strings.Contains(variant, lowered) {
			return true
		}
	}
	if normalized != "" && strings.Contains(pinyin.Normalize(ch.Pinyin), normalized) {
		return true
	}
	for _, definition := range ch.Definitions {
		if strings.Contains(strings.ToLower(definition), lowered) {
			return true
		}
	}
	return false
}

// GetFiltered evaluates the level and mastery filters over the catalog
// joined with the user's live progress rows, then slices out one page.
// A character passes the mastery filters only when it is unmastered in
// every requested skill.
func (s *characterService) GetFiltered(ctx context.Context, userID uuid.UUID, page, pageSize int, opts dto.FilterOptions) (*dto.FilteredCharactersResponse, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	levels := make(map[int]bool, len(opts.HSKLevels))
	for _, level := range opts.HSKLevels {
		levels[level] = true
	}

	needProgress := opts.FilterReading || opts.FilterWriting || opts.FilterRadical

	var progressByIndex map[int]*entity.CharacterProgress
	if needProgress {
		rows, err := s.progressRepo.FindAllByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		progressByIndex = make(map[int]*entity.CharacterProgress, len(rows))
		for i := range rows {
			progressByIndex[rows[i].CharacterIndex] = &rows[i]
		}
	}

	matching := []entity.Character{}
	for _, ch := range catalog {
		if len(levels) > 0 && !levels[ch.HSKLevel] {
			continue
		}
		if needProgress && masteredInAnyRequestedSkill(progressByIndex[ch.Index], opts) {
			continue
		}
		matching = append(matching, ch)
	}

	total := len(matching)

	// page*pageSize can overflow for huge page values; any page past the
	// last one is an empty slice.
	startOffset := total
	if page <= total/pageSize {
		startOffset = page * pageSize
	}
	endOffset := startOffset + pageSize
	if endOffset > total {
		endOffset = total
	}

	return &dto.FilteredCharactersResponse{
		Characters: matching[startOffset:endOffset],
		Total:      total,
	}, nil
}

// An absent progress row counts as unmastered in every skill.
func masteredInAnyRequestedSkill(record *entity.CharacterProgress, opts dto.FilterOptions) bool {
	if record == nil {
		return false
	}
	if opts.FilterReading && record.Reading {
		return true
	}
	if opts.FilterWriting && record.Writing {
		return true
	}
	if opts.FilterRadical && record.Radical {
		return true
	}
	return false
}

func (s *characterService) catalog(ctx context.Context) ([]entity.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot, nil
	}

	characters, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.snapshot = characters
	return s.snapshot, nil
}
