package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"orion_service/internal/clock"
	"orion_service/internal/events"
	"orion_service/internal/logger"
	"orion_service/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateShipmentStatus(ctx context.Context, wallet string, status models.ShipmentStatus) (*models.User, error)
}

type Mailer interface {
	SendConfirmationEmail(ctx context.Context, recipient, fullName string) error
}

type Handler struct {
	users  UserStore
	mailer Mailer
	events events.Publisher
	clock  clock.Clock
}

func NewHandler(users UserStore, mailer Mailer, publisher events.Publisher) *Handler {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handler{
		users:  users,
		mailer: mailer,
		events: publisher,
		clock:  clock.RealClock{},
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/payment-success", h.PaymentSuccess)

	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.PATCH("/:walletAddress", h.UpdateShipmentStatus)
	}
}

// PaymentSuccess sends the purchase confirmation email. The address is not
// checked here; the relay decides whether it is deliverable.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	var input PaymentSuccessRequest
	if err := bindJSON(c, &input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mailer.SendConfirmationEmail(c.Request.Context(), input.Email, input.FullName); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment success email sent."})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var input CreateUserRequest
	if err := bindJSON(c, &input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := input.ToUser()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.users.Create(c.Request.Context(), user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.publish(c.Request.Context(), events.UserCreated, *created)
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// UpdateShipmentStatus answers 200 with a null body when no record has the
// wallet address.
func (h *Handler) UpdateShipmentStatus(c *gin.Context) {
	wallet := c.Param("walletAddress")

	var input UpdateShipmentStatusRequest
	if err := bindJSON(c, &input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := input.Status()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateShipmentStatus(c.Request.Context(), wallet, status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if user != nil {
		h.publish(c.Request.Context(), events.ShipmentStatusUpdated, *user)
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) publish(ctx context.Context, eventType string, user models.User) {
	evt := events.NewEvent(eventType, user, h.clock.Now())
	if err := h.events.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("event", eventType).Str("wallet_address", user.WalletAddress).Msg("Failed to publish event")
	}
}

// bindJSON decodes the request body into obj. An empty body leaves obj at
// its zero value.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
