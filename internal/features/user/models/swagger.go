package models

// UsersResponse represents the user listing
type UsersResponse struct {
	Status  string         `json:"status" example:"success"`
	Message string         `json:"message" example:"Users Fetched Succesfuly!"`
	Users   []UserResponse `json:"users"`
}

// MessageResponse is a plain success acknowledgement
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Info Updated Succesfuly!"`
}
