package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/teedgg/linkintel"
	"github.com/teedgg/linkintel/db"
	"github.com/teedgg/linkintel/metrics"
	"github.com/teedgg/linkintel/models"
)

// ExtractResponse is the response of the product extraction endpoint
type ExtractResponse struct {
	Product    *models.Product          `json:"product,omitempty"`
	Extraction *models.ExtractionResult `json:"extraction,omitempty"`
	Cached     bool                     `json:"cached"`
}

// handleExtract extracts product identity from a URL and files it in the
// product library
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ExtractRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	productURL, err := linkintel.NormalizeURL(req.URL)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid url")
		return
	}

	// Serve from the library unless a fresh extraction is forced
	if !req.Force && s.products != nil {
		existing, err := s.products.GetByURL(productURL)
		if err != nil {
			s.log.Error("failed to look up product", "url", productURL, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to look up product")
			return
		}
		if existing != nil {
			s.log.Info("returning cached product", "url", productURL, "id", existing.ID)
			respondJSON(w, http.StatusOK, ExtractResponse{Product: existing, Cached: true})
			return
		}
	}

	var result models.ExtractionResult
	if req.Full {
		result = s.client.FullExtractProduct(r.Context(), productURL)
	} else {
		result = s.client.QuickExtractProduct(r.Context(), productURL, nil)
	}
	metrics.RecordExtraction(result)

	resp := ExtractResponse{Extraction: &result}
	if result.Confidence > 0 {
		resp.Product = s.fileProduct(r, productURL, result)
	}

	respondJSON(w, http.StatusOK, resp)
}

// fileProduct archives an extraction and saves it to the product library.
// Failures are logged and leave the response without a stored product.
func (s *Server) fileProduct(r *http.Request, productURL string, result models.ExtractionResult) *models.Product {
	product := db.ProductFromExtraction(result, linkintel.ExtractDomain(productURL))
	product.URL = productURL

	if s.archive != nil {
		name := strings.TrimSpace(result.Brand + " " + result.ProductName)
		key, err := s.archive.SaveExtraction(r.Context(), result, name)
		if err != nil {
			s.log.Warn("failed to archive extraction", "url", productURL, "error", err)
		} else {
			product.SnapshotKey = key
		}
	}

	if s.products == nil {
		return product
	}
	if err := s.products.SaveProduct(product); err != nil {
		s.log.Error("failed to save product", "url", productURL, "error", err)
		return nil
	}
	s.log.Info("product saved", "url", productURL, "id", product.ID, "slug", product.Slug)
	return product
}

// handleListProducts lists the product library
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.products == nil {
		respondError(w, http.StatusServiceUnavailable, "product library disabled")
		return
	}

	// Parse pagination parameters
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if _, err := fmt.Sscanf(l, "%d", &limit); err != nil || limit < 1 {
			limit = 20
		}
	}
	if limit > 100 {
		limit = 100
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if _, err := fmt.Sscanf(o, "%d", &offset); err != nil || offset < 0 {
			offset = 0
		}
	}

	products, err := s.products.List(db.ListOptions{
		Limit:  limit,
		Offset: offset,
		Domain: r.URL.Query().Get("domain"),
		Brand:  r.URL.Query().Get("brand"),
	})
	if err != nil {
		s.log.Error("failed to list products", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	total, err := s.products.Count()
	if err != nil {
		s.log.Error("failed to count products", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to count products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":   products,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// handleProduct handles GET and DELETE of /api/products/{id}
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	if s.products == nil {
		respondError(w, http.StatusServiceUnavailable, "product library disabled")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusBadRequest, "product id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetProduct(w, id)
	case http.MethodDelete:
		s.handleDeleteProduct(w, r, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleGetProduct retrieves a product by ID
func (s *Server) handleGetProduct(w http.ResponseWriter, id string) {
	product, err := s.products.GetByID(id)
	if err != nil {
		s.log.Error("failed to get product", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// handleDeleteProduct deletes a product and its archived snapshot
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := s.products.GetByID(id)
	if err != nil {
		s.log.Error("failed to get product", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	if err := s.products.DeleteByID(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		s.log.Error("failed to delete product", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	if product != nil && product.SnapshotKey != "" && s.archive != nil {
		if err := s.archive.Delete(r.Context(), product.SnapshotKey); err != nil {
			s.log.Warn("failed to delete snapshot", "id", id, "key", product.SnapshotKey, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "product deleted successfully",
	})
}
