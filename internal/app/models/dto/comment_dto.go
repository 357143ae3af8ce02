package dto

// CreateCommentRequest is the body of a new comment
type CreateCommentRequest struct {
	Body   string `json:"body" form:"body" binding:"required,max=2000"`
	NoteID int64  `json:"noteID" form:"noteID" binding:"required,min=1"`
}

// UpdateCommentRequest replaces the text of a comment
type UpdateCommentRequest struct {
	Body string `json:"body" form:"body" binding:"required,max=2000"`
}

// CommentListRequest is the query string of a comment listing
type CommentListRequest struct {
	NoteID  *int64 `form:"noteID"`
	OwnerID *int64 `form:"ownerID"`
	Query   string `form:"query"`
	Sort    string `form:"sort,default=likes"`
	Order   string `form:"order,default=asc"`
	Return  string `form:"return,default=id"`
}
