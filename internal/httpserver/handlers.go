package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	productdomain "catalog/backend/internal/domain/product"
	authusecase "catalog/backend/internal/usecase/auth"
	productusecase "catalog/backend/internal/usecase/product"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))

	s.router.Handle("/products", http.HandlerFunc(s.handleProducts))
	s.router.Handle("/products/search", http.HandlerFunc(s.handleProductSearch))
	s.router.Handle("/products/", http.HandlerFunc(s.handleProductByCode))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "username and password required")
		} else {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
		}
		return
	}

	token, err := s.authService.Login(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, authusecase.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.productManager.GetAll(ctx)
		if err != nil {
			if errors.Is(err, productusecase.ErrNoProducts) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		if !s.authorize(w, r) {
			return
		}
		var payload productdomain.Product
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if err := s.productManager.Add(ctx, &payload); err != nil {
			switch {
			case errors.Is(err, productusecase.ErrInvalidProduct):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, productdomain.ErrDuplicateCode):
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, &payload)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleProductSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	country := r.URL.Query().Get("origin_country")
	if country == "" {
		writeError(w, http.StatusBadRequest, "origin_country query parameter required")
		return
	}

	items, err := s.productManager.SearchByOriginCountry(r.Context(), country)
	if err != nil {
		if errors.Is(err, productusecase.ErrNoCountryMatch) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleProductByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/products/")
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		item, err := s.productManager.Get(ctx, code)
		if err != nil {
			if errors.Is(err, productdomain.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut, http.MethodPatch:
		if !s.authorize(w, r) {
			return
		}
		var payload productdomain.Product
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		payload.ProductCode = code
		if err := s.productManager.Update(ctx, &payload); err != nil {
			switch {
			case errors.Is(err, productusecase.ErrInvalidUpdate):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, productdomain.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, &payload)
	case http.MethodDelete:
		if !s.authorize(w, r) {
			return
		}
		if err := s.productManager.Delete(ctx, code); err != nil {
			switch {
			case errors.Is(err, productusecase.ErrEmptyProductCode):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, productdomain.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// authorize gates mutating routes behind a bearer token. It writes the error
// response itself and reports whether the request may proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if _, err := s.authService.VerifyToken(token); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return false
	}
	return true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
