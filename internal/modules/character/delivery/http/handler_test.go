package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zihui-app/zihui/internal/entity"
	characterRepo "github.com/zihui-app/zihui/internal/modules/character/repository"
	characterService "github.com/zihui-app/zihui/internal/modules/character/service"
	progressRepo "github.com/zihui-app/zihui/internal/modules/progress/repository"
	"github.com/zihui-app/zihui/internal/testutil"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	characters := []entity.Character{
		{Index: 0, Simplified: "学", Traditional: "學", Pinyin: "xué", Radical: "子", RadicalPinyin: "zǐ", Definitions: []string{"to study"}, HSKLevel: 1},
		{Index: 1, Simplified: "习", Traditional: "習", Pinyin: "xí", Radical: "乙", RadicalPinyin: "yǐ", Definitions: []string{"to practice"}, HSKLevel: 2},
	}
	require.NoError(t, db.Create(&characters).Error)

	svc := characterService.NewCharacterService(
		characterRepo.NewCharacterRepository(db),
		progressRepo.NewProgressRepository(db),
		nil,
		nil,
	)
	h := NewCharacterHandler(svc)

	router := gin.New()
	// Stands in for the JWT middleware.
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	})

	api := router.Group("/api")
	api.GET("/characters/search", h.SearchCharacters)
	api.GET("/characters/filtered", h.GetFilteredCharacters)
	api.GET("/characters/range/:start/:count", h.GetCharacterRange)
	api.GET("/characters/:index", h.GetCharacter)

	return router
}

func do(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetCharacterValidation(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/abc").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/-1").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/3000").Code)

	// Valid index with no seeded row is not-found, not a validation error.
	assert.Equal(t, http.StatusNotFound, do(t, router, "/api/characters/2500").Code)
}

func TestGetCharacterOK(t *testing.T) {
	router := newRouter(t)

	w := do(t, router, "/api/characters/0")
	require.Equal(t, http.StatusOK, w.Code)

	var ch entity.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ch))
	assert.Equal(t, "学", ch.Simplified)
}

func TestGetCharacterRangeValidation(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/range/-1/5").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/range/0/0").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/range/0/301").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/range/3000/5").Code)

	w := do(t, router, "/api/characters/range/0/2")
	require.Equal(t, http.StatusOK, w.Code)
	var characters []entity.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &characters))
	assert.Len(t, characters, 2)
}

func TestSearchCharacters(t *testing.T) {
	router := newRouter(t)

	// Blank term is an empty result, not an error.
	w := do(t, router, "/api/characters/search")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/search?q=xue&limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/search?q=xue&limit=101").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/search?q=xue&limit=abc").Code)

	w = do(t, router, "/api/characters/search?q=xue&limit=50")
	require.Equal(t, http.StatusOK, w.Code)
	var results []entity.Character
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Index)
}

func TestGetFilteredCharactersValidation(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/filtered?page=-1").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/filtered?pageSize=0").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, "/api/characters/filtered?pageSize=101").Code)

	// Malformed level entries are dropped, the query still runs.
	w := do(t, router, "/api/characters/filtered?hskLevels=1,abc,9")
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Characters []entity.Character `json:"characters"`
		Total      int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Characters, 1)
	assert.Equal(t, 1, result.Characters[0].HSKLevel)
}
