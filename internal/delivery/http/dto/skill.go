package dto

import (
	"github.com/google/uuid"

	"profile-match/internal/usecase"
)

type ResolveSkillRequest struct {
	Name string `json:"name" validate:"required"`
}

type ResolveBatchRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=200,dive,required"`
}

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type ConsolidateResponse struct {
	MergedCount int `json:"merged_count"`
}

func NewSkillResponse(item usecase.SkillItem) SkillResponse {
	return SkillResponse{ID: item.ID, Name: item.Name, Category: string(item.Category)}
}

func NewSkillListResponse(items []usecase.SkillItem) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillResponse(it))
	}
	return out
}
