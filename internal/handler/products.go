package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	GetProductByID(ctx context.Context, productID string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductsHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      CatalogService
	admin    func(http.Handler) http.Handler
	detail   detailMode
}

func NewProductsHandler(logger *slog.Logger, env string, svc CatalogService, admin func(http.Handler) http.Handler) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger.With(slog.String("handler", "products")),
		validate: validator.New(),
		svc:      svc,
		admin:    admin,
		detail:   detailModeFor(env),
	}
}

func (h *ProductsHandler) Init(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{product_id}", h.GetProductByID)

		r.Group(func(r chi.Router) {
			r.Use(h.admin)
			r.Post("/", h.CreateProduct)
			r.Put("/{product_id}", h.UpdateProduct)
			r.Delete("/{product_id}", h.DeleteProduct)
		})
	})
}

// ListProducts returns the whole catalog.
// @Summary      List products
// @Tags         products
// @Success      200  {array}  Product
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /products [get]
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.svc.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	result := make([]Product, 0, len(products))
	for _, p := range products {
		result = append(result, ProductEntityToJSON(p))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// GetProductByID returns a catalog entry.
// @Summary      Get product
// @Tags         products
// @Param        product_id  path  string  true  "Product ID"
// @Success      200  {object}  Product
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /products/{product_id} [get]
func (h *ProductsHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "product_id")

	product, err := h.svc.GetProductByID(ctx, productID)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "no product found with that ID", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err), slog.String("product_id", productID))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

// CreateProduct adds a catalog entry.
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  ProductRequest  true  "Product fields"
// @Success      201  {object}  Product
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Router       /products [post]
func (h *ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.svc.CreateProduct(ctx, ProductRequestToEntity("", req))
	if errors.Is(err, entities.ErrProductExists) {
		utils.WriteError(w, "duplicate product name, please use another one", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusCreated)
}

// UpdateProduct replaces the editable fields of a catalog entry.
// @Summary      Update product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Param        product_id  path  string          true  "Product ID"
// @Param        request     body  ProductRequest  true  "Product fields"
// @Success      200  {object}  Product
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /products/{product_id} [put]
func (h *ProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "product_id")

	var req ProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.svc.UpdateProduct(ctx, ProductRequestToEntity(productID, req))
	switch {
	case errors.Is(err, entities.ErrProductNotFound):
		utils.WriteError(w, "no product found with that ID", http.StatusNotFound)
	case errors.Is(err, entities.ErrProductExists):
		utils.WriteError(w, "duplicate product name, please use another one", http.StatusBadRequest)
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to update product", slog.Any("error", err), slog.String("product_id", productID))
		h.detail.writeServerError(w, "internal server error", err)
	default:
		utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
	}
}

// DeleteProduct removes a catalog entry.
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Param        product_id  path  string  true  "Product ID"
// @Success      204  "no content"
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /products/{product_id} [delete]
func (h *ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "product_id")

	err := h.svc.DeleteProduct(ctx, productID)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "no product found with that ID", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err), slog.String("product_id", productID))
		h.detail.writeServerError(w, "internal server error", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
