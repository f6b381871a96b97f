package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IImageService interface {
	Generate(ctx context.Context, request *dto.GenerateImageRequest) (*llm.ImageResult, error)
	Upload(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
}

type imageService struct {
	generator   llm.ImageGenerator
	uploadDir   string
	defaultSize string
	logger      logger.ILogger
}

func NewImageService(generator llm.ImageGenerator, uploadDir, defaultSize string, sysLogger logger.ILogger) IImageService {
	return &imageService{
		generator:   generator,
		uploadDir:   uploadDir,
		defaultSize: defaultSize,
		logger:      sysLogger,
	}
}

// Generate forwards the prompt to the image gateway and returns the payload
// unmodified. No session state is involved.
func (s *imageService) Generate(ctx context.Context, request *dto.GenerateImageRequest) (*llm.ImageResult, error) {
	size := request.Size
	if size == "" {
		size = s.defaultSize
	}

	result, err := s.generator.GenerateImage(ctx, request.Prompt, size)
	if err != nil {
		s.logger.Error("ImageService", "Image generation failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	return result, nil
}

func (s *imageService) Upload(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	// 1. Validate File Size (Max 10MB, matching the server body limit)
	if file.Size > 10*1024*1024 {
		return "", fmt.Errorf("file too large (max 10MB)")
	}

	// 2. Open File
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 3. Create Upload Directory
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	// 4. Generate Unique Filename
	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%s%s", userID, uuid.NewString(), ext)
	dstPath := filepath.Join(s.uploadDir, filename)

	// 5. Save File
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	s.logger.Info("ImageService", "File uploaded", map[string]interface{}{
		"user_id": userID,
		"path":    dstPath,
	})

	return dstPath, nil
}
