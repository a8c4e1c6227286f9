package dto

// Skills a self-test session can grade.
const (
	SkillPronunciation = "pronunciation"
	SkillWriting       = "writing"
	SkillRadical       = "radical"
)

type GradeRequest struct {
	CharacterIndex *int   `json:"character_index" binding:"required,min=0,max=2999"`
	Skill          string `json:"skill" binding:"required,oneof=pronunciation writing radical"`
	Answer         string `json:"answer" binding:"required"`
}

type GradeResponse struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
}
