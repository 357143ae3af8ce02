package dto

// LikeStatusResponse reports whether the caller likes an item
type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

// LikeCountResponse carries the cached like counter of an item
type LikeCountResponse struct {
	TotalLikes int64 `json:"totalLikes"`
}
