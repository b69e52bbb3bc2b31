package dto

// FeedResponse pages through posts. HasMore is the simple heuristic: a page
// shorter than requested is the end; a full page may or may not be.
type FeedResponse struct {
	Posts    []PostView `json:"posts"`
	Page     int64      `json:"page"`
	PageSize int64      `json:"pageSize"`
	HasMore  bool       `json:"hasMore"`
}

type TrendingResponse struct {
	Posts []PostView `json:"posts"`
}

// ===== Error Response =====
type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}
