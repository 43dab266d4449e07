package page

// CreatePageRequest is the payload for creating a page.
type CreatePageRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=300"`
	Slug      string `json:"slug" binding:"omitempty,max=320"`
	Content   string `json:"content" binding:"omitempty"`
	Published bool   `json:"published"`
}

// UpdatePageRequest is the payload for partially updating a page. Absent
// fields are left unchanged.
type UpdatePageRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=300"`
	Slug      *string `json:"slug" binding:"omitempty,max=320"`
	Content   *string `json:"content" binding:"omitempty"`
	Published *bool   `json:"published"`
}
