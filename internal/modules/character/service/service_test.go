package character

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/character/dto"
	repository "github.com/zihui-app/zihui/internal/modules/character/repository"
	progressRepo "github.com/zihui-app/zihui/internal/modules/progress/repository"
	"github.com/zihui-app/zihui/internal/testutil"
	"github.com/zihui-app/zihui/pkg/apperror"
	"gorm.io/gorm"
)

// Ten characters at indices 0-9, HSK levels 1,2,1,2,... so that
// levels {1,2} match everything and level {3} matches nothing.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	characters := []entity.Character{
		{Index: 0, Simplified: "学", Traditional: "學", Pinyin: "xué", Radical: "子", RadicalPinyin: "zǐ", Definitions: []string{"to study", "to learn"}, HSKLevel: 1},
		{Index: 1, Simplified: "习", Traditional: "習", Pinyin: "xí", Radical: "乙", RadicalPinyin: "yǐ", Definitions: []string{"to practice"}, HSKLevel: 2},
		{Index: 2, Simplified: "女", Traditional: "女", Pinyin: "nǚ", Radical: "女", RadicalPinyin: "nǚ", Definitions: []string{"female", "woman"}, HSKLevel: 1},
		{Index: 3, Simplified: "好", Traditional: "好", Pinyin: "hǎo", Radical: "女", RadicalPinyin: "nǚ", Definitions: []string{"good"}, HSKLevel: 2},
		{Index: 4, Simplified: "中", Traditional: "中", Pinyin: "zhōng", Radical: "丨", Definitions: []string{"middle", "center"}, HSKLevel: 1},
		{Index: 5, Simplified: "国", Traditional: "國", Pinyin: "guó", Radical: "囗", RadicalPinyin: "wéi", Definitions: []string{"country"}, HSKLevel: 2},
		{Index: 6, Simplified: "人", Traditional: "人", Pinyin: "rén", Radical: "人", RadicalPinyin: "rén", Definitions: []string{"person"}, HSKLevel: 1},
		{Index: 7, Simplified: "大", Traditional: "大", Pinyin: "dà", Radical: "大", RadicalPinyin: "dà", Definitions: []string{"big"}, HSKLevel: 2},
		{Index: 8, Simplified: "小", Traditional: "小", Pinyin: "xiǎo", Radical: "小", RadicalPinyin: "xiǎo", Definitions: []string{"small"}, HSKLevel: 1},
		{Index: 9, Simplified: "发", Traditional: "發", TraditionalVariants: []string{"發", "髮"}, Pinyin: "fā", Radical: "又", RadicalPinyin: "yòu", Definitions: []string{"to send"}, HSKLevel: 2},
	}
	require.NoError(t, db.Create(&characters).Error)
}

func newService(t *testing.T) (Service, *gorm.DB) {
	db := testutil.NewDB(t)
	seedCatalog(t, db)
	svc := NewCharacterService(
		repository.NewCharacterRepository(db),
		progressRepo.NewProgressRepository(db),
		nil, // no search index in tests; the catalog scan is the contract
		nil, // no redis
	)
	return svc, db
}

func TestGetByIndex(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ch, err := svc.GetByIndex(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "学", ch.Simplified)
	assert.Equal(t, []string{"to study", "to learn"}, ch.Definitions)

	// Inside the nominal bound but past the seeded catalog.
	_, err = svc.GetByIndex(ctx, 2500)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGetRangeExactWindow(t *testing.T) {
	svc, _ := newService(t)

	characters, err := svc.GetRange(context.Background(), 2, 3)
	require.NoError(t, err)

	require.Len(t, characters, 3)
	for i, ch := range characters {
		assert.Equal(t, 2+i, ch.Index)
	}
}

func TestGetRangeTruncatesAtCatalogTail(t *testing.T) {
	svc, _ := newService(t)

	// Only indices 0-9 are seeded; asking past the end is not an error.
	characters, err := svc.GetRange(context.Background(), 8, 5)
	require.NoError(t, err)

	require.Len(t, characters, 2)
	assert.Equal(t, 8, characters[0].Index)
	assert.Equal(t, 9, characters[1].Index)
}

func TestSearchMatchesToneInsensitivePinyin(t *testing.T) {
	svc, _ := newService(t)

	results, err := svc.Search(context.Background(), "xue", 50)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "学", results[0].Simplified)
}

func TestSearchBlankTermYieldsEmptyResult(t *testing.T) {
	svc, _ := newService(t)

	results, err := svc.Search(context.Background(), "   ", 50)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByGlyphAndDefinition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	results, err := svc.Search(ctx, "國", 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 5, results[0].Index)

	results, err = svc.Search(ctx, "WOMAN", 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Index)

	// Variant glyphs are searchable too.
	results, err = svc.Search(ctx, "髮", 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 9, results[0].Index)
}

func TestSearchRespectsLimitInCatalogOrder(t *testing.T) {
	svc, _ := newService(t)

	// "x" appears in the normalized pinyin of 学(xue), 习(xi) and 小(xiao).
	results, err := svc.Search(context.Background(), "x", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
}

func markProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, index int, reading, writing, radical bool) {
	t.Helper()
	require.NoError(t, db.Create(&entity.CharacterProgress{
		UserID:         userID,
		CharacterIndex: index,
		Reading:        reading,
		Writing:        writing,
		Radical:        radical,
	}).Error)
}

func TestGetFilteredByLevelAndMasteryWithPagination(t *testing.T) {
	svc, db := newService(t)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, db.Create(&entity.User{ID: userID}).Error)

	// Five of the ten seeded characters get their reading flag set; the
	// reading filter leaves the other five, across both HSK levels.
	for _, index := range []int{0, 2, 4, 6, 8} {
		markProgress(t, db, userID, index, true, false, false)
	}

	result, err := svc.GetFiltered(ctx, userID, 0, 2, dto.FilterOptions{
		HSKLevels:     []int{1, 2},
		FilterReading: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total)
	require.Len(t, result.Characters, 2)
	assert.Equal(t, 1, result.Characters[0].Index)
	assert.Equal(t, 3, result.Characters[1].Index)

	// Last page holds the remainder; total is unchanged.
	result, err = svc.GetFiltered(ctx, userID, 2, 2, dto.FilterOptions{
		HSKLevels:     []int{1, 2},
		FilterReading: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	require.Len(t, result.Characters, 1)
	assert.Equal(t, 9, result.Characters[0].Index)
}

func TestGetFilteredSkillFiltersCombineWithAnd(t *testing.T) {
	svc, db := newService(t)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, db.Create(&entity.User{ID: userID}).Error)

	// Mastered in reading but not writing: any requested skill being
	// mastered excludes the character.
	markProgress(t, db, userID, 0, true, false, false)

	result, err := svc.GetFiltered(ctx, userID, 0, 100, dto.FilterOptions{
		FilterReading: true,
		FilterWriting: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 9, result.Total)
	for _, ch := range result.Characters {
		assert.NotEqual(t, 0, ch.Index)
	}
}

func TestGetFilteredNoFiltersReturnsWholeCatalog(t *testing.T) {
	svc, _ := newService(t)

	result, err := svc.GetFiltered(context.Background(), uuid.New(), 0, 100, dto.FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Total)
	assert.Len(t, result.Characters, 10)
}

func TestGetFilteredLevelRestriction(t *testing.T) {
	svc, _ := newService(t)

	result, err := svc.GetFiltered(context.Background(), uuid.New(), 0, 100, dto.FilterOptions{
		HSKLevels: []int{3},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Characters)
}

func TestGetFilteredPageBeyondEnd(t *testing.T) {
	svc, _ := newService(t)

	result, err := svc.GetFiltered(context.Background(), uuid.New(), 50, 20, dto.FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Total)
	assert.Empty(t, result.Characters)
}

func TestGetFilteredHugePageNumberDoesNotOverflow(t *testing.T) {
	svc, _ := newService(t)

	// page*pageSize would wrap negative here; the result is just an empty
	// page, never a panic.
	result, err := svc.GetFiltered(context.Background(), uuid.New(), math.MaxInt, 100, dto.FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Total)
	assert.Empty(t, result.Characters)
}
