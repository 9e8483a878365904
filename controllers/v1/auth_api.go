package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"personnel-admin/controllers"
	"personnel-admin/lib/rbac"
	"personnel-admin/middleware"
	apimodels "personnel-admin/models/api"
	authapimodels "personnel-admin/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Get("me", controller.me)
	})
}

// @Summary Получить информацию о текущем пользователе
// @Tags Аутентификация пользователей
// @Description Пользователь из токена и права по модулям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.Me}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	role := middleware.GetUserRole(ctx)
	resp := authapimodels.Me{
		ID:          middleware.GetUserID(ctx),
		Name:        middleware.GetUserName(ctx),
		Role:        role,
		RoleName:    role.ToHuman(),
		Permissions: rbac.Instance.GetPermissions(role),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
