package dto

import "github.com/zihui-app/zihui/internal/entity"

// FilterOptions narrows the filtered browse query. An empty HSKLevels set
// means no level restriction. Each Filter* flag requests "only characters
// NOT yet mastered in that skill"; flags combine with AND across skills.
type FilterOptions struct {
	HSKLevels     []int
	FilterReading bool
	FilterWriting bool
	FilterRadical bool
}

// FilteredCharactersResponse carries one page plus the pre-pagination
// match count so the client can compute page numbers.
type FilteredCharactersResponse struct {
	Characters []entity.Character `json:"characters"`
	Total      int                `json:"total"`
}
