package dto

import (
	"time"

	"finledger/internal/core/id"
	"finledger/internal/domain/category"
)

// CreateCategoryRequest for adding a classification label.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// ToCategory converts to a domain record.
func (r *CreateCategoryRequest) ToCategory() *category.Category {
	return &category.Category{
		Name: r.Name,
		Kind: category.Kind(r.Type),
	}
}

// UpdateCategoryRequest carries the fields to change; empty ones are kept.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryResponse represents a category in API responses. Built-in
// defaults have an empty id.
type CategoryResponse struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FromCategory creates response from domain record.
func FromCategory(cat *category.Category) *CategoryResponse {
	resp := &CategoryResponse{
		Name:      cat.Name,
		Type:      string(cat.Kind),
		CreatedAt: cat.CreatedAt,
	}
	if !id.IsNil(cat.ID) {
		resp.ID = cat.ID.String()
	}
	return resp
}

// FromCategories converts a listing.
func FromCategories(items []category.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(items))
	for i := range items {
		out[i] = *FromCategory(&items[i])
	}
	return out
}
