package search

import (
	"encoding/json"
	"sort"

	"github.com/meilisearch/meilisearch-go"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/pkg/logger"
	"github.com/zihui-app/zihui/pkg/pinyin"
)

const charactersIndex = "characters"

// CatalogIndex is an optional full-text accelerator over the character
// catalog. The in-process scan in the character service remains the
// contractual search behavior; this index only speeds it up.
type CatalogIndex interface {
	SyncCharacters(characters []entity.Character) error
	Search(term string, limit int) ([]int, error)
}

type meiliCatalogIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliCatalogIndex(client meilisearch.ServiceManager) CatalogIndex {
	idx := &meiliCatalogIndex{client: client}
	idx.initIndex()
	return idx
}

func (s *meiliCatalogIndex) initIndex() {
	searchable := []string{"simplified", "traditional", "traditional_variants", "pinyin", "pinyin_plain", "definitions"}
	if _, err := s.client.Index(charactersIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logger.Warn("failed to update searchable attributes", logger.ErrorField(err))
	}

	filterable := []string{"hsk_level"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(charactersIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		logger.Warn("failed to update filterable attributes", logger.ErrorField(err))
	}
}

type meiliCharacterDoc struct {
	Index               int      `json:"index"`
	Simplified          string   `json:"simplified"`
	Traditional         string   `json:"traditional"`
	TraditionalVariants []string `json:"traditional_variants,omitempty"`
	Pinyin              string   `json:"pinyin"`
	PinyinPlain         string   `json:"pinyin_plain"`
	Radical             string   `json:"radical"`
	Definitions         []string `json:"definitions"`
	HSKLevel            int      `json:"hsk_level"`
}

func (s *meiliCatalogIndex) SyncCharacters(characters []entity.Character) error {
	docs := make([]meiliCharacterDoc, 0, len(characters))
	for _, ch := range characters {
		docs = append(docs, meiliCharacterDoc{
			Index:               ch.Index,
			Simplified:          ch.Simplified,
			Traditional:         ch.Traditional,
			TraditionalVariants: ch.TraditionalVariants,
			Pinyin:              ch.Pinyin,
			PinyinPlain:         pinyin.Normalize(ch.Pinyin),
			Radical:             ch.Radical,
			Definitions:         ch.Definitions,
			HSKLevel:            ch.HSKLevel,
		})
	}

	task, err := s.client.Index(charactersIndex).AddDocuments(docs, strPtr("index"))
	if err != nil {
		return err
	}

	logger.Info("catalog pushed to search index",
		logger.Int("documents", len(docs)),
		logger.Any("task_uid", task.TaskUID))
	return nil
}

// Search returns matching catalog indices in ascending catalog order.
func (s *meiliCatalogIndex) Search(term string, limit int) ([]int, error) {
	resp, err := s.client.Index(charactersIndex).Search(term, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}

	var hits []struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(hits))
	for _, hit := range hits {
		indices = append(indices, hit.Index)
	}
	sort.Ints(indices)

	return indices, nil
}

func strPtr(s string) *string {
	return &s
}
