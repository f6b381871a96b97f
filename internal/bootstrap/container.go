package bootstrap

import (
	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/llm"
)

type Container struct {
	// Controllers
	OAuthController controller.IOAuthController
	UserController  controller.IUserController
	ChatController  controller.IChatController
	ImageController controller.IImageController

	// Exposed for tests and shutdown
	Logger      logger.ILogger
	ChatHistory *memory.ChatHistoryRepository
}

// NewContainer wires everything up. The completion and image providers are
// passed in (main builds them from config via the factory) so tests can
// substitute fakes without touching the wiring.
func NewContainer(cfg *config.Config, chatProvider llm.LLMProvider, imageProvider llm.ImageGenerator) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-Memory State
	chatHistory := memory.NewChatHistoryRepository()
	oauthStates := memory.NewOAuthStateRepository()

	// 3. Services
	oauthService := service.NewOAuthService(cfg, oauthStates, sysLogger)
	chatService := service.NewChatService(chatHistory, chatProvider, sysLogger)
	imageService := service.NewImageService(imageProvider, cfg.App.UploadDir, cfg.Ai.ImageDefaultSize, sysLogger)

	// 4. Controllers
	return &Container{
		OAuthController: controller.NewOAuthController(oauthService, cfg),
		UserController:  controller.NewUserController(),
		ChatController:  controller.NewChatController(chatService),
		ImageController: controller.NewImageController(imageService),

		Logger:      sysLogger,
		ChatHistory: chatHistory,
	}
}
