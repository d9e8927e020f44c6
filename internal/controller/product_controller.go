package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"survey-sensei-be/internal/pkg/serverutils"
	"survey-sensei-be/internal/service"
)

type ProductController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) *ProductController {
	return &ProductController{productService: productService}
}

func (c *ProductController) RegisterRoutes(r fiber.Router) {
	product := r.Group("/product/v1")
	product.Get("/:id", c.GetProduct)
	product.Get("/:id/reviews", c.GetProductReviews)
}

func (c *ProductController) GetProduct(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("invalid product id")
	}

	resp, err := c.productService.GetProduct(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("product retrieved", resp))
}

func (c *ProductController) GetProductReviews(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("invalid product id")
	}

	resp, err := c.productService.GetProductReviews(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("product reviews retrieved", resp))
}
