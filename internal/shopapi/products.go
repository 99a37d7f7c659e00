package shopapi

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
)

const maxImageSize = 5 * 1024 * 1024

type productPayload struct {
	Name        string `form:"name" json:"name"`
	Price       string `form:"price" json:"price"`
	Description string `form:"description" json:"description"`
	Stock       string `form:"stock" json:"stock"`
}

func registerProductRoutes() {
	webserver.ApiPOST("/admin/add-product", createProduct, webserver.RequireAdmin)
	webserver.ApiPUT("/admin/products/:id", updateProduct, webserver.RequireAdmin)
	webserver.ApiPOST("/admin/delete-product/:id", deleteProduct, webserver.RequireAdmin)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required", nil)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(payload.Price), 64)
	if err != nil || price < 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be a non-negative number", nil)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(payload.Stock))
	if err != nil || stock < 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Stock must be a non-negative integer", nil)
	}

	imagePath := app.GetSettingsStringValue("shop", "placeholder_image")
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, err = saveProductImage(file)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		}
	}

	now := time.Now()
	p := domain.Product{
		Name:        payload.Name,
		Price:       price,
		Description: strings.TrimSpace(payload.Description),
		Stock:       stock,
		Image:       imagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		zap.L().Error("failed to create product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required", nil)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(payload.Price), 64)
	if err != nil || price < 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be a non-negative number", nil)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(payload.Stock))
	if err != nil || stock < 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Stock must be a non-negative integer", nil)
	}

	p.Name = payload.Name
	p.Price = price
	p.Description = strings.TrimSpace(payload.Description)
	p.Stock = stock
	p.UpdatedAt = time.Now()

	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, err := saveProductImage(file)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		}
		removeProductImage(p.Image)
		p.Image = imagePath
	}

	if err := GetDB(c).Save(&p).Error; err != nil {
		zap.L().Error("failed to update product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	return ok(c, p)
}

// deleteProduct removes a product and any cart lines referencing it, then
// cleans up its image file.
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	if err != nil {
		zap.L().Error("failed to delete product", zap.Int64("id", id), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}

	removeProductImage(p.Image)
	return ok(c, map[string]interface{}{"id": id})
}

// saveProductImage stores an uploaded image under the public product image
// directory and returns its public path.
func saveProductImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the %dMB limit", maxImageSize/(1024*1024))
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", fmt.Errorf("only image files are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("product-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1e9), filepath.Ext(file.Filename))
	dir := filepath.Join(app.Config().System.Workdir, "public/images/products")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/images/products/" + name, nil
}

// removeProductImage deletes an uploaded image file, leaving the shared
// placeholder alone.
func removeProductImage(image string) {
	if image == "" || image == app.GetSettingsStringValue("shop", "placeholder_image") {
		return
	}
	full := filepath.Join(app.Config().System.Workdir, "public", image)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("failed to remove product image", zap.String("path", full), zap.Error(err))
	}
}
