package dto

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Size   string `json:"size,omitempty"`
}

type UploadImageResponse struct {
	FilePath string `json:"filePath"`
}
