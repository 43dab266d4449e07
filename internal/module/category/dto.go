package category

// CreateCategoryRequest represents the input for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=200"`
	Slug string `json:"slug" form:"slug" binding:"omitempty,max=220"`
}

// UpdateCategoryRequest represents a typed partial update for a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name" form:"name" binding:"omitempty,min=1,max=200"`
	Slug *string `json:"slug" form:"slug" binding:"omitempty,max=220"`
}
