package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nutrilog/domain"
	"nutrilog/internal/api/presenters"
	"nutrilog/pkg/target"
)

type (
	TargetHandler interface {
		AddTarget(c *fiber.Ctx) error
		UpdateTarget(c *fiber.Ctx) error
		DeleteTarget(c *fiber.Ctx) error
		GetTargets(c *fiber.Ctx) error
		EvaluateDay(c *fiber.Ctx) error
	}

	targetHandler struct {
		targetService target.TargetService
		validator     *validator.Validate
	}
)

func NewTargetHandler(targetService target.TargetService, validator *validator.Validate) TargetHandler {
	return &targetHandler{
		targetService: targetService,
		validator:     validator,
	}
}

func (h *targetHandler) AddTarget(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddTargetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddTarget, err)
	}

	res, err := h.targetService.AddTarget(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddTarget, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddTarget)
}

func (h *targetHandler) UpdateTarget(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	targetID := c.Params("id")
	req := new(domain.UpdateTargetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTarget, err)
	}

	if err := h.targetService.UpdateTarget(c.Context(), targetID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTarget, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateTarget)
}

func (h *targetHandler) DeleteTarget(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	targetID := c.Params("id")

	if err := h.targetService.DeleteTarget(c.Context(), targetID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTarget, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTarget)
}

func (h *targetHandler) GetTargets(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.targetService.GetTargets(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTargets, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTargets)
}

func (h *targetHandler) EvaluateDay(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date", time.Now().Format("2006-01-02"))

	res, err := h.targetService.EvaluateDay(c.Context(), date, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEvaluateTarget, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEvaluateTarget)
}
