package dto

type CreateCommentDTO struct {
	Text string `json:"text" validate:"required,max=500"`
}

type CreateReplyDTO struct {
	Text string `json:"text" validate:"required,max=200"`
}
