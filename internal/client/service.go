package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"product-catalog/internal/apperrors"
	"product-catalog/internal/models"
	"product-catalog/internal/upload"
)

// ProductForm son los campos del formulario del cliente. ImagePath es
// una ruta local; vacía significa "sin imagen" (inválido en create,
// "conservar la actual" en update).
type ProductForm struct {
	Name        string
	Category    string
	Description string
	ImagePath   string
}

// Service consume la API HTTP del catálogo
type Service struct {
	baseURL string
	http    *http.Client
}

// NewService crea el cliente contra la URL base del servidor,
// por ejemplo http://localhost:8080
func NewService(baseURL string) *Service {
	return &Service{
		baseURL: baseURL,
		// Sin timeout ni reintentos: cada fallo es terminal y lo
		// reintenta el usuario a mano
		http: &http.Client{},
	}
}

// BaseURL devuelve el origen del servidor; las rutas de imagen que
// llegan en los productos son relativas y se prefijan con esto
func (s *Service) BaseURL() string {
	return s.baseURL
}

func (s *Service) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/products", nil)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := s.do(req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) CreateProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	body, contentType, err := multipartBody(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/products", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var product models.Product
	if err := s.do(req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	body, contentType, err := multipartBody(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/api/products/"+id, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var product models.Product
	if err := s.do(req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/api/products/"+id, nil)
	if err != nil {
		return err
	}
	return s.do(req, nil)
}

// do ejecuta la petición y decodifica la respuesta. Los fallos del
// servidor llegan como {code, message}: se devuelve el *apperrors.Error
// tal cual para que las capas de arriba decidan por código, nunca
// comparando texto.
func (s *Service) do(req *http.Request, out interface{}) error {
	res, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		var apiErr apperrors.Error
		if jsonErr := json.Unmarshal(data, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return &apiErr
		}
		return fmt.Errorf("server returned status %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// multipartBody arma el formulario multipart. El tope de 1.3 MiB se
// pre-chequea aquí igual que hacía el formulario web, para avisar
// antes de gastar la subida.
func multipartBody(form ProductForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	_ = w.WriteField("name", form.Name)
	_ = w.WriteField("category", form.Category)
	_ = w.WriteField("description", form.Description)

	if form.ImagePath != "" {
		info, err := os.Stat(form.ImagePath)
		if err != nil {
			return nil, "", err
		}
		if info.Size() > upload.MaxImageBytes {
			return nil, "", apperrors.PayloadTooLarge("Image size should be less than 1.3 MB")
		}

		part, err := w.CreateFormFile(upload.FieldName, filepath.Base(form.ImagePath))
		if err != nil {
			return nil, "", err
		}
		f, err := os.Open(form.ImagePath)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
