package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"arm-servicedesk/internal/auth"
	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	arms        service.ARMService
	tickets     service.TicketService
	stats       service.StatsService
	backup      service.BackupService
	tokens      *auth.Manager
	logger      *logrus.Logger
	frontendDir string
}

func NewHandler(
	users service.UserService,
	arms service.ARMService,
	tickets service.TicketService,
	stats service.StatsService,
	backup service.BackupService,
	tokens *auth.Manager,
	logger *logrus.Logger,
	frontendDir string,
) *Handler {
	return &Handler{
		users:       users,
		arms:        arms,
		tickets:     tickets,
		stats:       stats,
		backup:      backup,
		tokens:      tokens,
		logger:      logger,
		frontendDir: frontendDir,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	if h.frontendDir != "" {
		router.StaticFile("/", filepath.Join(h.frontendDir, "index.html"))
		router.StaticFile("/style.css", filepath.Join(h.frontendDir, "style.css"))
		router.StaticFile("/app.js", filepath.Join(h.frontendDir, "app.js"))
	}

	api := router.Group("/api")
	{
		api.POST("/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	authed := api.Group("", h.authRequired())
	{
		authed.GET("/arms", h.listARMs)
		authed.GET("/arms/:id", h.getARM)
		authed.POST("/tickets", h.createTicket)
		authed.GET("/tickets", h.listTickets)
		authed.GET("/stats", h.getStats)
	}

	admin := authed.Group("/admin", h.adminRequired())
	{
		admin.POST("/arms", h.createARM)
		admin.PUT("/arms/:id", h.updateARM)
		admin.DELETE("/arms/:id", h.deleteARM)
		admin.PUT("/tickets/:id", h.updateTicketStatus)
		admin.POST("/backup", h.exportBackup)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createARMRequest struct {
	InventoryNumber string            `json:"inventory_number" binding:"required"`
	Name            string            `json:"name" binding:"required"`
	Location        string            `json:"location"`
	User            string            `json:"user"`
	Department      string            `json:"department"`
	Characteristics map[string]string `json:"characteristics"`
}

type updateARMRequest struct {
	InventoryNumber *string           `json:"inventory_number"`
	Name            *string           `json:"name"`
	Location        *string           `json:"location"`
	User            *string           `json:"user"`
	Department      *string           `json:"department"`
	Status          *string           `json:"status"`
	Characteristics map[string]string `json:"characteristics"`
}

type createTicketRequest struct {
	ARMID       string `json:"arm_id" binding:"required"`
	ProblemType string `json:"problem_type" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Description string `json:"description"`
}

type updateTicketRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"is_admin": h.users.IsAdmin(user.Username),
		"message":  "login successful",
	})
}

func (h *Handler) listARMs(c *gin.Context) {
	arms, err := h.arms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]ARMResponse, len(arms))
	for i := range arms {
		resp[i] = armToResponse(arms[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getARM(c *gin.Context) {
	arm, err := h.arms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, armToResponse(*arm))
}

func (h *Handler) createARM(c *gin.Context) {
	var req createARMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arm, err := h.arms.Create(c.Request.Context(), service.CreateARMInput{
		InventoryNumber: req.InventoryNumber,
		Name:            req.Name,
		Location:        req.Location,
		User:            req.User,
		Department:      req.Department,
		Characteristics: req.Characteristics,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "arm created",
		"arm":     armToResponse(*arm),
	})
}

func (h *Handler) updateARM(c *gin.Context) {
	var req updateARMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arm, err := h.arms.Update(c.Request.Context(), c.Param("id"), service.UpdateARMInput{
		InventoryNumber: req.InventoryNumber,
		Name:            req.Name,
		Location:        req.Location,
		User:            req.User,
		Department:      req.Department,
		Status:          req.Status,
		Characteristics: req.Characteristics,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "arm updated",
		"arm":     armToResponse(*arm),
	})
}

func (h *Handler) deleteARM(c *gin.Context) {
	if err := h.arms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "arm deleted"})
}

func (h *Handler) createTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.tickets.Create(c.Request.Context(), service.CreateTicketInput{
		ARMID:       req.ARMID,
		ProblemType: req.ProblemType,
		Priority:    req.Priority,
		Description: req.Description,
	}, c.GetString(ctxUsername))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ticket created",
		"ticket":  ticketToResponse(*ticket),
	})
}

func (h *Handler) listTickets(c *gin.Context) {
	tickets, err := h.tickets.ListFor(c.Request.Context(), c.GetString(ctxUsername), c.GetBool(ctxIsAdmin))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = ticketToResponse(tickets[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateTicketStatus(c *gin.Context) {
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.tickets.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, c.GetString(ctxUsername))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ticket status updated",
		"ticket":  ticketToResponse(*ticket),
	})
}

func (h *Handler) getStats(c *gin.Context) {
	ctx := c.Request.Context()

	if c.GetBool(ctxIsAdmin) {
		stats, err := h.stats.Admin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_arms":          stats.TotalARMs,
			"operational_arms":    stats.OperationalARMs,
			"total_tickets":       stats.TotalTickets,
			"new_tickets":         stats.NewTickets,
			"in_progress_tickets": stats.InProgressTickets,
			"resolved_tickets":    stats.ResolvedTickets,
		})
		return
	}

	stats, err := h.stats.ForUser(ctx, c.GetString(ctxUsername))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"my_tickets":             stats.MyTickets,
		"my_new_tickets":         stats.MyNewTickets,
		"my_in_progress_tickets": stats.MyInProgressTickets,
		"my_resolved_tickets":    stats.MyResolvedTickets,
	})
}

func (h *Handler) exportBackup(c *gin.Context) {
	location, err := h.backup.Export(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrBackupDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "backup exported",
		"location": location,
	})
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var activeTickets *service.ActiveTicketsError
	switch {
	case errors.Is(err, service.ErrARMNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "arm not found"})
	case errors.Is(err, service.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
	case errors.Is(err, service.ErrDuplicateInventoryNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &activeTickets):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          activeTickets.Error(),
			"active_tickets": activeTickets.Count,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type ARMResponse struct {
	ID              string            `json:"id"`
	InventoryNumber string            `json:"inventory_number"`
	Name            string            `json:"name"`
	Location        string            `json:"location"`
	User            string            `json:"user"`
	Department      string            `json:"department"`
	Status          string            `json:"status"`
	Characteristics map[string]string `json:"characteristics"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type TicketResponse struct {
	ID          string `json:"id"`
	ARMID       string `json:"arm_id"`
	ProblemType string `json:"problem_type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedBy   string `json:"created_by"`
	UpdatedBy   string `json:"updated_by,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func armToResponse(arm domain.ARM) ARMResponse {
	characteristics := arm.Characteristics
	if characteristics == nil {
		characteristics = map[string]string{}
	}
	return ARMResponse{
		ID:              arm.ID,
		InventoryNumber: arm.InventoryNumber,
		Name:            arm.Name,
		Location:        arm.Location,
		User:            arm.User,
		Department:      arm.Department,
		Status:          arm.Status,
		Characteristics: characteristics,
		CreatedAt:       arm.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       arm.UpdatedAt.Format(time.RFC3339),
	}
}

func ticketToResponse(ticket domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		ARMID:       ticket.ARMID,
		ProblemType: ticket.ProblemType,
		Priority:    ticket.Priority,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedBy:   ticket.CreatedBy,
		UpdatedBy:   ticket.UpdatedBy,
		CreatedAt:   ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ticket.UpdatedAt.Format(time.RFC3339),
	}
}
