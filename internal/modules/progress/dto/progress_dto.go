package dto

// UpsertProgressRequest replaces the full mastery triple for one character.
// CharacterIndex is a pointer so index 0 survives the required check.
type UpsertProgressRequest struct {
	CharacterIndex *int `json:"character_index" binding:"required,min=0,max=2999"`
	Reading        bool `json:"reading"`
	Writing        bool `json:"writing"`
	Radical        bool `json:"radical"`
}

type ProgressResponse struct {
	CharacterIndex int  `json:"character_index"`
	Reading        bool `json:"reading"`
	Writing        bool `json:"writing"`
	Radical        bool `json:"radical"`
}
