package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"nutrilog/domain"
	"nutrilog/internal/api/presenters"
	"nutrilog/pkg/diary"
)

type (
	DiaryHandler interface {
		AddEntry(c *fiber.Ctx) error
		CopyEntry(c *fiber.Ctx) error
		UpdateEntry(c *fiber.Ctx) error
		DeleteEntry(c *fiber.Ctx) error
		GetDay(c *fiber.Ctx) error
		GetSummaryRange(c *fiber.Ctx) error
	}

	diaryHandler struct {
		diaryService diary.DiaryService
		validator    *validator.Validate
	}
)

func NewDiaryHandler(diaryService diary.DiaryService, validator *validator.Validate) DiaryHandler {
	return &diaryHandler{
		diaryService: diaryService,
		validator:    validator,
	}
}

func (h *diaryHandler) AddEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddLogEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLogEntry, err)
	}

	res, err := h.diaryService.AddEntry(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddLogEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddLogEntry)
}

func (h *diaryHandler) CopyEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")

	res, err := h.diaryService.CopyEntry(c.Context(), entryID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCopyLogEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCopyLogEntry)
}

func (h *diaryHandler) UpdateEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")
	req := new(domain.UpdateLogEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLogEntry, err)
	}

	if err := h.diaryService.UpdateEntry(c.Context(), entryID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLogEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateLogEntry)
}

func (h *diaryHandler) DeleteEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	entryID := c.Params("id")

	if err := h.diaryService.DeleteEntry(c.Context(), entryID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteLogEntry, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteLogEntry)
}

func (h *diaryHandler) GetDay(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date", time.Now().Format("2006-01-02"))

	res, err := h.diaryService.GetDay(c.Context(), date, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDiary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDiary)
}

func (h *diaryHandler) GetSummaryRange(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSummary, domain.ErrInvalidDate)
	}

	res, err := h.diaryService.GetSummaryRange(c.Context(), from, to, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSummary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSummary)
}
