package handlers

import (
	"strings"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"
	"freshtrack-backend/pkg/recipe"
	"freshtrack-backend/pkg/vision"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AIHandler interface {
		GetRecipes(c *fiber.Ctx) error
		AnalyzeFreshness(c *fiber.Ctx) error
		RecognizeFood(c *fiber.Ctx) error
	}

	aiHandler struct {
		recipeService recipe.RecipeService
		visionService vision.VisionService
		validator     *validator.Validate
	}
)

func NewAIHandler(recipeService recipe.RecipeService, visionService vision.VisionService, validator *validator.Validate) AIHandler {
	return &aiHandler{
		recipeService: recipeService,
		visionService: visionService,
		validator:     validator,
	}
}

func (h *aiHandler) GetRecipes(c *fiber.Ctx) error {
	req := new(domain.RecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	res, err := h.recipeService.GetRecipeRecommendations(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *aiHandler) AnalyzeFreshness(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeFreshness, domain.ErrFileNotImage)
	}

	res, err := h.visionService.AnalyzeFreshness(c.Context(), file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeFreshness, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzeFreshness)
}

func (h *aiHandler) RecognizeFood(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecognizeFood, domain.ErrFileNotImage)
	}

	res, err := h.visionService.RecognizeFood(c.Context(), file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecognizeFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecognizeFood)
}
