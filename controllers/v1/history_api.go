package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"personnel-admin/controllers"
	historyhandler "personnel-admin/lib/history"
	"personnel-admin/middleware"
	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
	historyapimodels "personnel-admin/models/api/history"
)

type historyApiController struct {
	controllers.BaseAPIController
	kind models.HistoryKind
}

// InitHistoryApiRouters ресурсы status-history, asset-history, station-history
func InitHistoryApiRouters(app *fiber.App) {
	for _, kind := range models.HistoryKinds {
		controller := historyApiController{kind: kind}
		app.Route(kind.Spec().Resource, func(router fiber.Router) {
			router.Get("", controller.list)
			router.Post("", controller.create)
			router.Post("export", controller.export)
			router.Get(":id", controller.get)
			router.Put(":id", controller.update)
			router.Delete(":id", controller.delete)
		})
	}
	exportController := historyExportApiController{}
	app.Get("history-export/*", exportController.download)
}

// @Summary Список записей истории
// @Tags История сотрудника
// @Description Список записей истории вида status, asset или station. Параметр статуса/действия и текстовый фильтр зависят от вида
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param   employee	query	string	false	"ID сотрудника"
// @Param   status		query	string	false	"текущий статус (status)"
// @Param   action		query	string	false	"действие (asset, station)"
// @Param   description	query	string	false	"поиск по описанию (status)"
// @Param   remarks		query	string	false	"поиск по примечанию (asset, station)"
// @Param   page		query	int		false	"страница"
// @Param   limit		query	int		false	"записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]historyapimodels.StatusHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history [get]
func (c *historyApiController) list(ctx *fiber.Ctx) error {
	var filter historyapimodels.HistoryFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := historyhandler.Instance.List(c.kind, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание записи истории
// @Tags История сотрудника
// @Description Создание записи. Предыдущее значение (актив, место службы) и дата окончания предыдущей записи заполняются сервером
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param	body body	 historyapimodels.AssetHistoryData	true	"request body (набор полей зависит от вида)"
// @Success 200 {object} apimodels.Response{data=historyapimodels.AssetHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history [post]
func (c *historyApiController) create(ctx *fiber.Ctx) error {
	payload, err := historyapimodels.NewData(c.kind)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.BodyParser(ctx, payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, hMsg, err := historyhandler.Instance.Create(c.kind, c.author(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания записи истории")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Получение записи истории
// @Tags История сотрудника
// @Description Получение записи истории по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=historyapimodels.StatusHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history/{id} [get]
func (c *historyApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := historyhandler.Instance.Get(c.kind, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменение записи истории
// @Tags История сотрудника
// @Description Изменение записи. Сотрудник и предыдущее значение не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 historyapimodels.StationHistoryData	true	"request body (набор полей зависит от вида)"
// @Success 200 {object} apimodels.Response{data=historyapimodels.StationHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history/{id} [put]
func (c *historyApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	payload, err := historyapimodels.NewData(c.kind)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.BodyParser(ctx, payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, hMsg, err := historyhandler.Instance.Update(c.kind, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения записи истории")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Удаление записи истории
// @Tags История сотрудника
// @Description Удаление записи без каскада
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history/{id} [delete]
func (c *historyApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = historyhandler.Instance.Delete(c.kind, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка истории
// @Tags История сотрудника
// @Description Формирует выгрузку по фильтру списка и сохраняет ее в архив
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind		path	string	true	"вид истории: status, asset, station"
// @Param   format		query	string	false	"xlsx (по умолчанию) или pdf"
// @Param   employee	query	string	false	"ID сотрудника"
// @Success 200 {object} apimodels.Response{data=historyapimodels.ExportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{kind}-history/export [post]
func (c *historyApiController) export(ctx *fiber.Ctx) error {
	var request historyapimodels.ExportRequest
	if err := c.QueryParser(ctx, &request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, hMsg, err := historyhandler.Instance.Export(ctx.UserContext(), c.kind, c.author(ctx), request)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки истории")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *historyApiController) author(ctx *fiber.Ctx) historyhandler.Author {
	return historyhandler.Author{
		UserID:   middleware.GetUserID(ctx),
		UserName: middleware.GetUserName(ctx),
	}
}

type historyExportApiController struct {
	controllers.BaseAPIController
}

// @Summary Скачать выгрузку истории
// @Tags История сотрудника
// @Description Скачать ранее сохраненную выгрузку по ключу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   key          		path    string  				    	true         "ключ выгрузки"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history-export/{key} [get]
func (c *historyExportApiController) download(ctx *fiber.Ctx) error {
	key := ctx.Params("*")
	if key == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан ключ выгрузки"))
	}

	rec, body, err := historyhandler.Instance.GetExport(ctx.UserContext(), key)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения выгрузки")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rec.Name))
	return ctx.Status(fiber.StatusOK).Send(body)
}
