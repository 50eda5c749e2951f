package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SubmitWordRequest is the request body for a turn submission
type SubmitWordRequest struct {
	Word string `json:"word"`
}

// SuggestTitleRequest is the request body for suggesting a story title
type SuggestTitleRequest struct {
	Title string `json:"title"`
}

// UpvoteTitleRequest is the request body for upvoting a suggested title
type UpvoteTitleRequest struct {
	Title string `json:"title"`
}

// CommentRequest is the request body for commenting on a story as a guest
type CommentRequest struct {
	DisplayName string `json:"display_name"`
	Text        string `json:"text"`
}
