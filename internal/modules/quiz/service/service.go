package quiz

import (
	"context"
	"strings"

	character "github.com/zihui-app/zihui/internal/modules/character/service"
	"github.com/zihui-app/zihui/internal/modules/quiz/dto"
	"github.com/zihui-app/zihui/pkg/pinyin"
)

type Service interface {
	Grade(ctx context.Context, req dto.GradeRequest) (*dto.GradeResponse, error)
}

type quizService struct {
	characters character.Service
}

func NewQuizService(characters character.Service) Service {
	return &quizService{characters: characters}
}

// Grade checks a typed answer for one character and skill. Pronunciation
// answers compare tone- and case-insensitively; written glyphs compare
// literally after trimming. Radical questions grade against the radical's
// pinyin when one is recorded, else against the radical glyph itself.
func (s *quizService) Grade(ctx context.Context, req dto.GradeRequest) (*dto.GradeResponse, error) {
	ch, err := s.characters.GetByIndex(ctx, *req.CharacterIndex)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(req.Answer)

	switch req.Skill {
	case dto.SkillPronunciation:
		return &dto.GradeResponse{
			Correct:  pinyin.Equivalent(answer, ch.Pinyin),
			Expected: ch.Pinyin,
		}, nil

	case dto.SkillWriting:
		correct := answer == ch.Simplified || answer == ch.Traditional
		for _, variant := range ch.TraditionalVariants {
			correct = correct || answer == variant
		}
		return &dto.GradeResponse{
			Correct:  correct,
			Expected: ch.Simplified,
		}, nil

	default: // dto.SkillRadical, enforced by binding
		if ch.RadicalPinyin != "" {
			return &dto.GradeResponse{
				Correct:  pinyin.Equivalent(answer, ch.RadicalPinyin),
				Expected: ch.RadicalPinyin,
			}, nil
		}
		return &dto.GradeResponse{
			Correct:  answer == ch.Radical,
			Expected: ch.Radical,
		}, nil
	}
}
