package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/pkg/serverutils"
	"survey-sensei-be/internal/service"
)

type ReviewController struct {
	reviewService service.IReviewService
}

func NewReviewController(reviewService service.IReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

func (c *ReviewController) RegisterRoutes(r fiber.Router) {
	review := r.Group("/review/v1")
	review.Post("/generate", c.Generate)
	review.Post("/regenerate", c.Regenerate)
	review.Post("/select", c.Select)
	review.Get("/candidates/:sessionId", c.GetCandidates)
}

func (c *ReviewController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateReviewsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.reviewService.Generate(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("review candidates generated", resp))
}

func (c *ReviewController) Regenerate(ctx *fiber.Ctx) error {
	var req dto.GenerateReviewsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.reviewService.Regenerate(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("review candidates regenerated", resp))
}

func (c *ReviewController) Select(ctx *fiber.Ctx) error {
	var req dto.SelectReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.reviewService.Select(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("review finalized", resp))
}

func (c *ReviewController) GetCandidates(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return serverutils.BadRequest("invalid session id")
	}

	resp, err := c.reviewService.GetCandidates(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("candidates retrieved", resp))
}
