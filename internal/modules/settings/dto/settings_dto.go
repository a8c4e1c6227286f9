package dto

// UpdateSettingsRequest is a partial update: only non-nil fields change.
// Numeric fields are clamped to their documented bounds, not rejected.
type UpdateSettingsRequest struct {
	CurrentLevel         *int  `json:"current_level"`
	DailyCharCount       *int  `json:"daily_char_count"`
	PreferTraditional    *bool `json:"prefer_traditional"`
	StandardModePageSize *int  `json:"standard_mode_page_size"`
}
