package handlers

import (
	"server/internal/app"
	pollController "server/internal/controllers/polls"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PollHandler struct {
	Handler
	controller pollController.PollController
}

func NewPollHandler(app app.App, router fiber.Router) *PollHandler {
	log := logger.New("handlers").File("poll_handler")
	return &PollHandler{
		controller: *app.PollController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *PollHandler) Register() {
	polls := h.router.Group("/polls")
	polls.Post("/", h.create)
	polls.Get("/", h.list)
	polls.Get("/:id", h.get)
	polls.Get("/:id/edit", h.edit)
	polls.Patch("/:id", h.update)
	polls.Delete("/:id", h.remove)
	polls.Post("/:id/toggle-images", h.toggleImages)

	h.router.Get("/og/:id", h.ogImage)
}

func (h *PollHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var request CreatePollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create poll request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse create poll request"})
	}

	id, err := h.controller.Create(c.UserContext(), request)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "id": id})
}

func (h *PollHandler) list(c *fiber.Ctx) error {
	polls, err := h.controller.List(c.UserContext())
	if err != nil {
		h.log.Function("list").Er("failed to list polls", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to list polls"})
	}

	return c.JSON(fiber.Map{"message": "success", "polls": polls})
}

func (h *PollHandler) get(c *fiber.Ctx) error {
	poll, found, err := h.controller.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		h.log.Function("get").Er("failed to get poll", err, "id", c.Params("id"))
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get poll"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "poll not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "poll": poll})
}

func (h *PollHandler) edit(c *fiber.Ctx) error {
	view, found, err := h.controller.EditView(c.UserContext(), c.Params("id"))
	if err != nil {
		h.log.Function("edit").Er("failed to load poll for edit", err, "id", c.Params("id"))
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to load poll"})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "poll not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "poll": view.Poll, "votingDateInput": view.VotingDateInput})
}

func (h *PollHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")

	var request UpdatePollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse update poll request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse update poll request"})
	}

	if err := h.controller.Update(c.UserContext(), c.Params("id"), request); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *PollHandler) remove(c *fiber.Ctx) error {
	if err := h.controller.Delete(c.UserContext(), c.Params("id")); err != nil {
		h.log.Function("remove").Er("failed to delete poll", err, "id", c.Params("id"))
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to delete poll"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *PollHandler) toggleImages(c *fiber.Ctx) error {
	log := h.log.Function("toggleImages")

	var request TogglePollImagesRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse toggle request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse toggle request"})
	}

	newValue, err := h.controller.ToggleShowImages(c.UserContext(), c.Params("id"), request.Current)
	if err != nil {
		log.Er("failed to toggle candidate images", err, "id", c.Params("id"))
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to toggle candidate images"})
	}
	if newValue == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "poll not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "showCandidateImages": *newValue})
}

func (h *PollHandler) ogImage(c *fiber.Ctx) error {
	contentType, data, found, err := h.controller.OgImage(c.UserContext(), c.Params("id"))
	if err != nil {
		h.log.Function("ogImage").Er("failed to load og image", err, "id", c.Params("id"))
		return c.Status(fiber.StatusInternalServerError).SendString("internal server error")
	}
	if !found {
		return c.Status(fiber.StatusNotFound).SendString("image not found")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(data)
}
