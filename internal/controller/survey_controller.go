package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/pkg/serverutils"
	"survey-sensei-be/internal/service"
)

type SurveyController struct {
	surveyService service.ISurveyService
}

func NewSurveyController(surveyService service.ISurveyService) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

func (c *SurveyController) RegisterRoutes(r fiber.Router) {
	survey := r.Group("/survey/v1")
	survey.Post("/start", c.Start)
	survey.Post("/answer", c.Answer)
	survey.Post("/skip", c.Skip)
	survey.Post("/edit", c.Edit)
	survey.Get("/session/:id", c.GetSession)
	survey.Get("/session/:id/transcript", c.GetTranscript)
	survey.Get("/session/:id/editable", c.GetForEdit)
}

func (c *SurveyController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSurveyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.surveyService.Start(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("survey started", resp))
}

func (c *SurveyController) Answer(ctx *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.surveyService.Answer(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("answer recorded", resp))
}

func (c *SurveyController) Skip(ctx *fiber.Ctx) error {
	var req dto.SkipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.surveyService.Skip(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("question skipped", resp))
}

func (c *SurveyController) Edit(ctx *fiber.Ctx) error {
	var req dto.EditAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	resp, err := c.surveyService.Edit(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("answer edited", resp))
}

func (c *SurveyController) GetSession(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("invalid session id")
	}

	resp, err := c.surveyService.GetSession(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("session retrieved", resp))
}

func (c *SurveyController) GetTranscript(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("invalid session id")
	}

	resp, err := c.surveyService.GetTranscript(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("transcript retrieved", resp))
}

func (c *SurveyController) GetForEdit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("invalid session id")
	}

	resp, err := c.surveyService.GetForEdit(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("editable transcript retrieved", resp))
}
