package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/zihui-app/zihui/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindByUserAndIndex(ctx context.Context, userID uuid.UUID, index int) (*entity.CharacterProgress, error)
	FindRangeByUser(ctx context.Context, userID uuid.UUID, start, count int) ([]entity.CharacterProgress, error)
	FindByUserAndIndices(ctx context.Context, userID uuid.UUID, indices []int) ([]entity.CharacterProgress, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.CharacterProgress, error)
	Upsert(ctx context.Context, progress *entity.CharacterProgress) (*entity.CharacterProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUserAndIndex(ctx context.Context, userID uuid.UUID, index int) (*entity.CharacterProgress, error) {
	var progress entity.CharacterProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND character_index = ?", userID, index).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindRangeByUser(ctx context.Context, userID uuid.UUID, start, count int) ([]entity.CharacterProgress, error) {
	var progress []entity.CharacterProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND character_index >= ? AND character_index < ?", userID, start, start+count).
		Order("character_index asc").
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) FindByUserAndIndices(ctx context.Context, userID uuid.UUID, indices []int) ([]entity.CharacterProgress, error) {
	if len(indices) == 0 {
		return []entity.CharacterProgress{}, nil
	}

	var progress []entity.CharacterProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND character_index IN ?", userID, indices).
		Order("character_index asc").
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]entity.CharacterProgress, error) {
	var progress []entity.CharacterProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("character_index asc").
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// Upsert replaces the full flag triple in a single statement, so readers
// never observe a partially-updated record. Last write wins.
func (r *progressRepository) Upsert(ctx context.Context, progress *entity.CharacterProgress) (*entity.CharacterProgress, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "character_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"reading", "writing", "radical", "updated_at"}),
		}).
		Create(progress).Error; err != nil {
		return nil, err
	}

	return r.FindByUserAndIndex(ctx, progress.UserID, progress.CharacterIndex)
}
