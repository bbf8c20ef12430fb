package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"product-catalog/internal/apperrors"
	"product-catalog/internal/cache"
	"product-catalog/internal/models"
	"product-catalog/internal/upload"
)

const listCacheKey = "products:list"

// ProductGateway son las operaciones de persistencia que usan los handlers
type ProductGateway interface {
	Insert(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindByNameExcludingID(ctx context.Context, name, id string) (*models.Product, error)
	UpdateByID(ctx context.Context, id string, fields bson.M) (*models.Product, error)
	DeleteByID(ctx context.Context, id string) (*models.Product, error)
}

// ImageSaver convierte un archivo adjunto en una ruta servible
type ImageSaver interface {
	Save(file *multipart.FileHeader) (string, error)
}

type ProductHandler struct {
	repo  ProductGateway
	saver ImageSaver
	cache *cache.Cache
}

func NewProductHandler(repo ProductGateway, saver ImageSaver) *ProductHandler {
	return &ProductHandler{
		repo:  repo,
		saver: saver,
		cache: cache.Get(),
	}
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError traduce cualquier fallo a su status + cuerpo JSON.
// Los errores sin categoría salen como 500 con mensaje genérico.
func respondError(c *gin.Context, err error, fallback string) {
	apiErr := apperrors.FromErr(err, fallback)
	c.JSON(apiErr.StatusCode(), apiErr)
}

// imageFile extrae el archivo del formulario; nil cuando no viene ninguno
func imageFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile(upload.FieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

// CreateProduct crea un nuevo producto
// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, apperrors.Validation(err.Error()), "")
		return
	}

	file, err := imageFile(c)
	if err != nil {
		respondError(c, err, "could not read image")
		return
	}

	// En create la imagen es obligatoria
	if input.Name == "" || input.Category == "" || input.Description == "" || file == nil {
		respondError(c, apperrors.Validation("All fields are required"), "")
		return
	}

	// Pre-chequeo de unicidad para un 409 amigable; el índice único
	// decide de verdad si hay carrera
	existing, err := h.repo.FindByName(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, err, "could not create product")
		return
	}
	if existing != nil {
		respondError(c, apperrors.Conflict("Product already exists"), "")
		return
	}

	// El tope de tamaño se valida antes de tocar la base de datos
	imagePath, err := h.saver.Save(file)
	if err != nil {
		respondError(c, err, "could not store image")
		return
	}

	product := models.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Image:       imagePath,
	}

	if err := h.repo.Insert(c.Request.Context(), &product); err != nil {
		respondError(c, err, "could not create product")
		return
	}

	h.cache.Delete(listCacheKey)
	c.JSON(http.StatusCreated, product)
}

// GetProducts lista el catálogo completo (con caché)
// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if cached, found := h.cache.GetValue(listCacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "could not list products")
		return
	}

	h.cache.Set(listCacheKey, products, 2*time.Minute)
	c.JSON(http.StatusOK, products)
}

// UpdateProduct actualiza un producto; la imagen solo cambia si la
// petición trae archivo nuevo
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var input models.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, apperrors.Validation(err.Error()), "")
		return
	}

	if input.Name == "" || input.Category == "" || input.Description == "" {
		respondError(c, apperrors.Validation("All fields are required"), "")
		return
	}

	// El nombre puede quedarse igual: se excluye el propio ID
	existing, err := h.repo.FindByNameExcludingID(c.Request.Context(), input.Name, id)
	if err != nil {
		respondError(c, err, "could not update product")
		return
	}
	if existing != nil {
		respondError(c, apperrors.Conflict("Product name exists"), "")
		return
	}

	fields := bson.M{
		"name":        input.Name,
		"category":    input.Category,
		"description": input.Description,
	}

	file, err := imageFile(c)
	if err != nil {
		respondError(c, err, "could not read image")
		return
	}
	if file != nil {
		imagePath, err := h.saver.Save(file)
		if err != nil {
			respondError(c, err, "could not store image")
			return
		}
		fields["image"] = imagePath
	}

	updated, err := h.repo.UpdateByID(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err, "could not update product")
		return
	}

	h.cache.Delete(listCacheKey)
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct elimina definitivamente un producto
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repo.DeleteByID(c.Request.Context(), id); err != nil {
		respondError(c, err, "could not delete product")
		return
	}

	h.cache.Delete(listCacheKey)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted"})
}
