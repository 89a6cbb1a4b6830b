package controller

import (
	"strconv"

	"note-to-self/internal/dto"
	"note-to-self/internal/pkg/serverutils"
	"note-to-self/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	Select(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	Load(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	ListCells(ctx *fiber.Ctx) error
	AddCell(ctx *fiber.Ctx) error
	GetCell(ctx *fiber.Ctx) error
	UpdateCell(ctx *fiber.Ctx) error
	DeleteCell(ctx *fiber.Ctx) error
}

type notebookController struct {
	service  service.INotebookService
	sessions service.ISessionService
	secure   bool
}

// NewNotebookController wires the store and session services. secure marks
// the token cookie Secure (production only).
func NewNotebookController(service service.INotebookService, sessions service.ISessionService, secure bool) INotebookController {
	return &notebookController{service: service, sessions: sessions, secure: secure}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1")
	h.Post("/select", c.Select)
	h.Post("/close", c.Close)
	h.Post("", c.Create)

	gate := serverutils.NotebookAccessMiddleware(c.sessions)
	h.Get("/:id", gate, c.Load)
	h.Put("/:id", gate, c.Save)
	h.Get("/:id/cells", gate, c.ListCells)
	h.Post("/:id/cells", gate, c.AddCell)
	h.Get("/:id/cells/:cellId", gate, c.GetCell)
	h.Put("/:id/cells/:cellId", gate, c.UpdateCell)
	h.Delete("/:id/cells/:cellId", gate, c.DeleteCell)
}

func paramInt64(ctx *fiber.Ctx, key string) (int64, error) {
	v, err := strconv.ParseInt(ctx.Params(key), 10, 64)
	if err != nil || v <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return v, nil
}

func (c *notebookController) open(ctx *fiber.Ctx, notebookId int64, message string) error {
	res, err := c.sessions.Open(notebookId)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.TokenCookieName,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   c.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *notebookController) Select(ctx *fiber.Ctx) error {
	var req dto.OpenNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	id, err := c.service.Select(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.open(ctx, id, "Success select notebook")
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	var req dto.OpenNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	id, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	ctx.Status(fiber.StatusCreated)
	return c.open(ctx, id, "Success create notebook")
}

func (c *notebookController) Close(ctx *fiber.Ctx) error {
	token := serverutils.ExtractToken(ctx)
	if token == "" {
		return serverutils.ErrForbidden
	}
	if err := c.sessions.Close(token); err != nil {
		return err
	}
	ctx.ClearCookie(serverutils.TokenCookieName)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success close notebook", nil))
}

func (c *notebookController) Load(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Load(ctx.UserContext(), grant, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load notebook", res))
}

func (c *notebookController) Save(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.NotebookDto
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Id != id {
		return fiber.NewError(fiber.StatusBadRequest, "notebook id in body does not match path")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Save(ctx.UserContext(), grant, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success save notebook", nil))
}

func (c *notebookController) ListCells(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}

	ids, err := c.service.ListCellIds(ctx.UserContext(), grant, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list cells", dto.CellIdsResponse{Ids: ids}))
}

func (c *notebookController) AddCell(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}

	cell, err := c.service.AddCell(ctx.UserContext(), grant, id)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add cell", cell))
}

func (c *notebookController) GetCell(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}
	cellId, err := paramInt64(ctx, "cellId")
	if err != nil {
		return err
	}

	cell, err := c.service.GetCell(ctx.UserContext(), grant, id, cellId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cell", cell))
}

func (c *notebookController) UpdateCell(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}
	cellId, err := paramInt64(ctx, "cellId")
	if err != nil {
		return err
	}

	var req dto.UpdateCellTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.UpdateCellText(ctx.UserContext(), grant, id, cellId, req.Text); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success update cell", nil))
}

func (c *notebookController) DeleteCell(ctx *fiber.Ctx) error {
	grant, err := serverutils.GrantFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := paramInt64(ctx, "id")
	if err != nil {
		return err
	}
	cellId, err := paramInt64(ctx, "cellId")
	if err != nil {
		return err
	}

	deleted, err := c.service.DeleteCell(ctx.UserContext(), grant, id, cellId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete cell", dto.DeleteCellResponse{Deleted: deleted}))
}
