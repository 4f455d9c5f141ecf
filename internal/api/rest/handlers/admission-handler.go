package handlers

import (
	"errors"

	"github.com/SundayYogurt/intern_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/helper"
	"github.com/SundayYogurt/intern_service/internal/helper/utils"
	"github.com/SundayYogurt/intern_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdmissionHandler struct {
	accountSvc  services.AccountService
	importSvc   services.ImportService
	approvalSvc services.ApprovalService
	accountH    *AccountHandler
	auth        helper.Auth
}

func NewAdmissionHandler(
	accountSvc services.AccountService,
	importSvc services.ImportService,
	approvalSvc services.ApprovalService,
	auth helper.Auth,
) *AdmissionHandler {
	return &AdmissionHandler{
		accountSvc:  accountSvc,
		importSvc:   importSvc,
		approvalSvc: approvalSvc,
		accountH:    NewAccountHandler(accountSvc, auth),
		auth:        auth,
	}
}

func (h *AdmissionHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// =========================
	// AUTH
	// =========================
	auth := api.Group("/auth")
	auth.Post("/login", h.accountH.Login)

	// =========================
	// USER (ต้องมี token)
	// =========================
	user := api.Group("/user", middleware.AuthMiddleware(h.auth))
	user.Get("/me", h.accountH.Me)

	// =========================
	// ADMIN
	// =========================
	admin := api.Group("/admin",
		middleware.AuthMiddleware(h.auth),
		middleware.AdminOnly(h.accountSvc),
	)

	admin.Post("/divisions", h.accountH.CreateDivision)
	admin.Get("/divisions", h.accountH.ListDivisions)
	admin.Patch("/users/:userID/status", h.accountH.SetStatus)

	admin.Post("/interns/import", h.BulkImport)
	admin.Get("/submissions/pending", h.ListPendingSubmissions)
	admin.Patch("/submissions/:id/status", h.UpdateSubmissionStatus)
}

func (h *AdmissionHandler) BulkImport(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.BulkImportRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	result, err := h.importSvc.BulkImport(adminID, requestBody)
	if err != nil {
		if errors.Is(err, services.ErrNoCandidates) ||
			errors.Is(err, services.ErrNoValidDivision) ||
			errors.Is(err, services.ErrMissingEmail) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *AdmissionHandler) ListPendingSubmissions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	subs, err := h.approvalSvc.ListPending(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "failed to list pending submissions")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, subs)
}

func (h *AdmissionHandler) UpdateSubmissionStatus(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	submissionID, err := ctx.ParamsInt("id")
	if err != nil || submissionID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid submission id")
	}

	var requestBody dto.UpdateSubmissionStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	result, err := h.approvalSvc.UpdateStatus(adminID, uint(submissionID), requestBody.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) || errors.Is(err, services.ErrAlreadyReviewed) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}
