package httpapi

import (
	"errors"
	"net/http"

	"pathific-platform/internal/auth"
	"pathific-platform/internal/content"
	"pathific-platform/internal/modules"
	"pathific-platform/internal/payments"
	"pathific-platform/internal/users"
	"pathific-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Users    *users.Service
	Content  *content.Service
	Modules  *modules.Service
	Payments *payments.Client
}

// --- Auth ---

type registerRequest struct {
	ExternalID      string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	City            string `json:"city"`
	Level           string `json:"level"`
	Role            string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an identity and returns a signed session token.
func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}

	token, err := h.Users.Register(c.Request.Context(), users.RegisterRequest{
		ExternalID:      req.ExternalID,
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		City:            req.City,
		Level:           req.Level,
		Role:            req.Role,
	})
	if err != nil {
		status, msg := registerError(err)
		if status == http.StatusInternalServerError {
			logger.FromGin(c).Error("register failed", "err", err)
		}
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

// Login verifies credentials and returns a signed session token. All
// credential failures share one message; nothing here may reveal whether the
// email exists.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}

	token, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing credentials"})
		case errors.Is(err, users.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid credentials"})
		default:
			logger.FromGin(c).Error("login failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func registerError(err error) (int, string) {
	switch {
	case errors.Is(err, users.ErrMissingFields):
		return http.StatusBadRequest, "Missing required fields"
	case errors.Is(err, users.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match"
	case errors.Is(err, users.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// Me returns the identity bound by the authorization gate.
func (h Handlers) Me(c *gin.Context) {
	email, err := auth.Subject(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
		return
	}
	name, _ := auth.Name(c.Request.Context())
	role, _ := auth.Role(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{"email": email, "name": name, "role": role}})
}

// --- Content ---

func (h Handlers) ListCourts(c *gin.Context) {
	items, err := h.Content.ListCourts(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list courts failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h Handlers) WeeklyWinner(c *gin.Context) {
	winner, found, err := h.Content.WeeklyWinner(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("weekly winner failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no winner this week"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "winner": winner})
}

func (h Handlers) ListBadges(c *gin.Context) {
	items, err := h.Content.ListBadges(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list badges failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h Handlers) LearnMore(c *gin.Context) {
	items, err := h.Content.ListLearnItems(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("learn items failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Handlers) CreateCourt(c *gin.Context) {
	var req content.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	court, err := h.Content.CreateCourt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, content.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name and slug are required"})
			return
		}
		logger.FromGin(c).Error("create court failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "court": court})
}

// --- Modules ---

func (h Handlers) ListModules(c *gin.Context) {
	out, err := h.Modules.ListByCourt(c.Request.Context(), c.Param("court_id"))
	if err != nil {
		if errors.Is(err, modules.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "court id required"})
			return
		}
		logger.FromGin(c).Error("list modules failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateModule(c *gin.Context) {
	var req modules.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	m, err := h.Modules.Create(c.Request.Context(), c.Param("court_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, modules.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "title and order_index are required"})
		case errors.Is(err, modules.ErrOrderTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "order_index already taken in this court"})
		default:
			logger.FromGin(c).Error("create module failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h Handlers) UpdateModule(c *gin.Context) {
	var req modules.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	m, err := h.Modules.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, modules.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		case errors.Is(err, modules.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid module fields"})
		case errors.Is(err, modules.ErrOrderTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "order_index already taken in this court"})
		default:
			logger.FromGin(c).Error("update module failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteModule keeps the legacy success/message body the curate UI expects,
// unlike the ok/error shape used elsewhere.
func (h Handlers) DeleteModule(c *gin.Context) {
	err := h.Modules.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, modules.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Module not found"})
			return
		}
		logger.FromGin(c).Error("delete module failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Module deleted successfully"})
}

// --- Module items ---

func (h Handlers) ListModuleItems(c *gin.Context) {
	out, err := h.Modules.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, modules.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "module id required"})
			return
		}
		logger.FromGin(c).Error("list module items failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateModuleItem(c *gin.Context) {
	var req modules.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	it, err := h.Modules.CreateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, modules.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "module not found"})
		case errors.Is(err, modules.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "title, url and position are required"})
		case errors.Is(err, modules.ErrPositionTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "position already taken in this module"})
		default:
			logger.FromGin(c).Error("create module item failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h Handlers) UpdateModuleItem(c *gin.Context) {
	var req modules.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	it, err := h.Modules.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, modules.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, modules.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item fields"})
		case errors.Is(err, modules.ErrPositionTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "position already taken in this module"})
		default:
			logger.FromGin(c).Error("update module item failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h Handlers) DeleteModuleItem(c *gin.Context) {
	err := h.Modules.DeleteItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, modules.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "item not found"})
			return
		}
		logger.FromGin(c).Error("delete module item failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type completeRequest struct {
	ModuleID string `json:"moduleId"`
}

// Complete records a module completion for the authenticated user. The user
// comes from the verified token, never from the request body.
func (h Handlers) Complete(c *gin.Context) {
	email, err := auth.Subject(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}

	if err := h.Modules.Complete(c.Request.Context(), email, req.ModuleID); err != nil {
		switch {
		case errors.Is(err, modules.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "module not found"})
		case errors.Is(err, modules.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "moduleId required"})
		default:
			logger.FromGin(c).Error("completion failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Payments ---

type checkoutRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
}

func (h Handlers) Checkout(c *gin.Context) {
	email, err := auth.Subject(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
		return
	}
	name, _ := auth.Name(c.Request.Context())

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json"})
		return
	}
	if req.Name == "" {
		req.Name = name
	}

	link, err := h.Payments.Checkout(c.Request.Context(), payments.CheckoutRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Email:    email,
		Phone:    req.Phone,
		Name:     req.Name,
	})
	if err != nil {
		logger.FromGin(c).Error("checkout failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "checkout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "link": link})
}

// PaymentWebhook acknowledges provider callbacks after validating the shared
// webhook hash. Payment state transitions belong to the store once payment
// persistence lands.
func (h Handlers) PaymentWebhook(c *gin.Context) {
	if !h.Payments.VerifyWebhookHash(c.GetHeader("verif-hash")) {
		logger.FromGin(c).Warn("payment webhook rejected", "reason", "bad verif-hash")
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
