package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Me(ctx *fiber.Ctx) error
}

type userController struct{}

func NewUserController() IUserController {
	return &userController{}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	r.Get("/me", serverutils.JwtMiddleware, c.Me)
}

// Me returns the authenticated principal as resolved from the token claims.
func (c *userController) Me(ctx *fiber.Ctx) error {
	res := &dto.UserProfileResponse{
		Id:        ctx.Locals("user_id").(string),
		Email:     ctx.Locals("email").(string),
		FullName:  ctx.Locals("full_name").(string),
		AvatarURL: ctx.Locals("avatar_url").(string),
	}

	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}
