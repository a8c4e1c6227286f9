package character

import (
	"context"

	"github.com/zihui-app/zihui/internal/entity"
	"gorm.io/gorm"
)

type CharacterRepository interface {
	FindByIndex(ctx context.Context, index int) (*entity.Character, error)
	FindRange(ctx context.Context, start, count int) ([]entity.Character, error)
	FindAll(ctx context.Context) ([]entity.Character, error)
}

type characterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) FindByIndex(ctx context.Context, index int) (*entity.Character, error) {
	var character entity.Character
	if err := r.db.WithContext(ctx).Where("char_index = ?", index).First(&character).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) FindRange(ctx context.Context, start, count int) ([]entity.Character, error) {
	var characters []entity.Character
	if err := r.db.WithContext(ctx).
		Where("char_index >= ? AND char_index < ?", start, start+count).
		Order("char_index asc").
		Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *characterRepository) FindAll(ctx context.Context) ([]entity.Character, error) {
	var characters []entity.Character
	if err := r.db.WithContext(ctx).
		Order("char_index asc").
		Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}
