package entity

// Catalog bounds enforced at the API boundary. The catalog holds at most
// CatalogSizeBound characters; a single range or batch read may span at
// most MaxBatchSize of them.
const (
	CatalogSizeBound = 3000
	MaxBatchSize     = 300
)

// Example is one usage sentence with its gloss.
type Example struct {
	Chinese string `json:"chinese"`
	English string `json:"english"`
}

// Character is one row of the frequency-ordered catalog. The catalog is
// seeded by an offline import pipeline and read-only at runtime.
// Index is the 0-based frequency rank and the character's identity.
type Character struct {
	Index               int       `gorm:"column:char_index;primaryKey;autoIncrement:false" json:"index"`
	Simplified          string    `gorm:"size:8;not null" json:"simplified"`
	Traditional         string    `gorm:"size:8;not null" json:"traditional"`
	TraditionalVariants []string  `gorm:"serializer:json" json:"traditionalVariants,omitempty"`
	Pinyin              string    `gorm:"size:64;not null" json:"pinyin"`
	Radical             string    `gorm:"size:8;not null" json:"radical"`
	RadicalPinyin       string    `gorm:"size:64" json:"radicalPinyin"`
	Definitions         []string  `gorm:"serializer:json;not null" json:"definition"`
	Examples            []Example `gorm:"serializer:json" json:"examples"`
	HSKLevel            int       `gorm:"not null;index" json:"hskLevel"`
}

func (Character) TableName() string {
	return "characters"
}
