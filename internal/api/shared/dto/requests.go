package dto

// PinMetadataRequest is the body of POST /metadata
type PinMetadataRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"required"`
}
