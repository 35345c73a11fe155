package dto

// ReviewSessionRequest represents the request body for reviewing a session
// @Description Request body for approving or rejecting an attendance session
type ReviewSessionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Notes  string `json:"notes,omitempty"`
}

// ReviewTaskRequest represents the request body for reviewing a task
// @Description Request body for verifying or rejecting a task awaiting review
type ReviewTaskRequest struct {
	Status string `json:"status" binding:"required,oneof=verified rejected"`
	Notes  string `json:"notes,omitempty"`
}
