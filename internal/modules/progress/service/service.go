package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/progress/dto"
	repository "github.com/zihui-app/zihui/internal/modules/progress/repository"
	userRepo "github.com/zihui-app/zihui/internal/modules/user/repository"
	"gorm.io/gorm"
)

type Service interface {
	Get(ctx context.Context, userID uuid.UUID, index int) (*dto.ProgressResponse, error)
	GetRange(ctx context.Context, userID uuid.UUID, start, count int) ([]dto.ProgressResponse, error)
	GetBatch(ctx context.Context, userID uuid.UUID, indices []int) ([]dto.ProgressResponse, error)
	Upsert(ctx context.Context, userID uuid.UUID, req dto.UpsertProgressRequest) (*dto.ProgressResponse, error)
}

type progressService struct {
	repo     repository.ProgressRepository
	userRepo userRepo.UserRepository
}

func NewProgressService(repo repository.ProgressRepository, userRepo userRepo.UserRepository) Service {
	return &progressService{repo: repo, userRepo: userRepo}
}

// Get returns the stored flags, or the all-false default when no record
// exists. Absence and an all-false record are indistinguishable to callers.
func (s *progressService) Get(ctx context.Context, userID uuid.UUID, index int) (*dto.ProgressResponse, error) {
	record, err := s.repo.FindByUserAndIndex(ctx, userID, index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ProgressResponse{CharacterIndex: index}, nil
		}
		return nil, err
	}

	return toResponse(record), nil
}

// GetRange returns only the records that exist within [start, start+count).
// Absent entries are omitted; callers apply the all-false default when
// reconciling against the catalog. The count is truncated at the catalog
// size bound.
func (s *progressService) GetRange(ctx context.Context, userID uuid.UUID, start, count int) ([]dto.ProgressResponse, error) {
	if start+count > entity.CatalogSizeBound {
		count = entity.CatalogSizeBound - start
	}

	records, err := s.repo.FindRangeByUser(ctx, userID, start, count)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func (s *progressService) GetBatch(ctx context.Context, userID uuid.UUID, indices []int) ([]dto.ProgressResponse, error) {
	records, err := s.repo.FindByUserAndIndices(ctx, userID, indices)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func (s *progressService) Upsert(ctx context.Context, userID uuid.UUID, req dto.UpsertProgressRequest) (*dto.ProgressResponse, error) {
	if err := s.userRepo.EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	record, err := s.repo.Upsert(ctx, &entity.CharacterProgress{
		UserID:         userID,
		CharacterIndex: *req.CharacterIndex,
		Reading:        req.Reading,
		Writing:        req.Writing,
		Radical:        req.Radical,
	})
	if err != nil {
		return nil, err
	}

	return toResponse(record), nil
}

func toResponse(record *entity.CharacterProgress) *dto.ProgressResponse {
	return &dto.ProgressResponse{
		CharacterIndex: record.CharacterIndex,
		Reading:        record.Reading,
		Writing:        record.Writing,
		Radical:        record.Radical,
	}
}

func toResponses(records []entity.CharacterProgress) []dto.ProgressResponse {
	responses := make([]dto.ProgressResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *toResponse(&records[i]))
	}
	return responses
}
