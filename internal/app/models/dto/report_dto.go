package dto

// CreateReportRequest files an abuse report against a note or comment
type CreateReportRequest struct {
	Type        string `json:"type" form:"type" binding:"required"`
	ItemID      int64  `json:"item" form:"item" binding:"required,min=1"`
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"max=5000"`
}
