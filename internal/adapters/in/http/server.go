// Package http is the inbound HTTP adapter. Handlers are thin: they parse
// the request, build a command or query, and map domain errors to status
// codes. Authentication is terminated upstream; the gateway forwards the
// caller's identity in X-User-Id and X-User-Role headers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler             commands.CheckoutCommandHandler
	updateSellerStatusHandler   commands.UpdateSellerStatusCommandHandler
	assignDeliveryHandler       commands.AssignDeliveryCommandHandler
	advanceDeliveryHandler      commands.AdvanceDeliveryCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler
	markAllReadHandler          commands.MarkAllNotificationsReadCommandHandler
	deleteNotificationHandler   commands.DeleteNotificationCommandHandler

	// Query handlers
	getNotificationsHandler queries.GetNotificationsQueryHandler
	getUnreadCountHandler   queries.GetUnreadCountQueryHandler
	getSellerOrdersHandler  queries.GetSellerOrdersQueryHandler
	getDeliveryRouteHandler queries.GetDeliveryRouteQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	updateSellerStatusHandler commands.UpdateSellerStatusCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	markAllReadHandler commands.MarkAllNotificationsReadCommandHandler,
	deleteNotificationHandler commands.DeleteNotificationCommandHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getUnreadCountHandler queries.GetUnreadCountQueryHandler,
	getSellerOrdersHandler queries.GetSellerOrdersQueryHandler,
	getDeliveryRouteHandler queries.GetDeliveryRouteQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:             checkoutHandler,
		updateSellerStatusHandler:   updateSellerStatusHandler,
		assignDeliveryHandler:       assignDeliveryHandler,
		advanceDeliveryHandler:      advanceDeliveryHandler,
		cancelOrderHandler:          cancelOrderHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		markAllReadHandler:          markAllReadHandler,
		deleteNotificationHandler:   deleteNotificationHandler,
		getNotificationsHandler:     getNotificationsHandler,
		getUnreadCountHandler:       getUnreadCountHandler,
		getSellerOrdersHandler:      getSellerOrdersHandler,
		getDeliveryRouteHandler:     getDeliveryRouteHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.Checkout)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PATCH("/orders/:id/seller-status", s.UpdateSellerStatus)
	api.POST("/orders/:id/assign", s.AssignDelivery)
	api.PATCH("/orders/:id/delivery-status", s.AdvanceDelivery)
	api.GET("/orders/:id/route", s.GetDeliveryRoute)
	api.GET("/seller/orders", s.GetSellerOrders)

	api.GET("/notifications", s.GetNotifications)
	api.GET("/notifications/unread-count", s.GetUnreadCount)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.DELETE("/notifications/:id", s.DeleteNotification)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type checkoutRequest struct {
	OrderID             string          `json:"orderId"`
	BuyerEmail          string          `json:"buyerEmail"`
	Items               []checkoutItem  `json:"items"`
	DeliveryFee         float64         `json:"deliveryFee"`
	Address             checkoutAddress `json:"address"`
	PaymentMethod       string          `json:"paymentMethod"`
	SpecialInstructions string          `json:"specialInstructions"`
}

type checkoutItem struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"imageUrl"`
	SellerID      string  `json:"sellerId"`
	BusinessName  string  `json:"businessName"`
	AccountNumber string  `json:"accountNumber"`
	AccountName   string  `json:"accountName"`
}

type checkoutResponse struct {
	OrderID string `json:"orderId"`
}

type checkoutAddress struct {
	Label      string `json:"label"`
	Line       string `json:"line"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Checkout handles POST /api/v1/orders - places a new order.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req checkoutRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		if orderID, err = kernel.UUIDFromString(req.OrderID); err != nil {
			return badRequest(ctx, err)
		}
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		item, itemErr := buildItem(it)
		if itemErr != nil {
			return badRequest(ctx, itemErr)
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(req.Address.Label, req.Address.Line,
		req.Address.City, req.Address.PostalCode, req.Address.Phone)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(orderID, actor.ID(), req.BuyerEmail,
		items, req.DeliveryFee, address, req.PaymentMethod, req.SpecialInstructions)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, checkoutResponse{OrderID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type updateSellerStatusRequest struct {
	SellerID string `json:"sellerId"`
	Status   string `json:"status"`
}

// UpdateSellerStatus handles PATCH /api/v1/orders/:id/seller-status.
func (s *Server) UpdateSellerStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req updateSellerStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	// Sellers act on their own entry; admins must name the seller.
	sellerID := actor.ID()
	if req.SellerID != "" {
		if sellerID, err = kernel.UUIDFromString(req.SellerID); err != nil {
			return badRequest(ctx, err)
		}
	}

	next, err := parseSellerStatus(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateSellerStatusCommand(orderID, sellerID, next, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.updateSellerStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignDeliveryRequest struct {
	CourierID string `json:"courierId"`
}

// AssignDelivery handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req assignDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, courierID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type advanceDeliveryRequest struct {
	Status string `json:"status"`
}

// AdvanceDelivery handles PATCH /api/v1/orders/:id/delivery-status.
func (s *Server) AdvanceDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req advanceDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	next, err := parseDeliveryStatus(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, next, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.advanceDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type deliveryRouteResponse struct {
	OrderID     string  `json:"orderId"`
	Number      string  `json:"number"`
	AddressText string  `json:"addressText"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

// GetDeliveryRoute handles GET /api/v1/orders/:id/route.
func (s *Server) GetDeliveryRoute(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetDeliveryRouteQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	route, err := s.getDeliveryRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryRouteResponse{
		OrderID:     route.OrderID.String(),
		Number:      route.Number,
		AddressText: route.AddressText,
		Lat:         route.Destination.Lat(),
		Lon:         route.Destination.Lon(),
		DisplayName: route.Destination.DisplayName(),
	})
}

type sellerOrderResponse struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	BuyerID      string  `json:"buyerId"`
	Status       string  `json:"status"`
	SellerStatus string  `json:"sellerStatus"`
	Total        float64 `json:"total"`
	CreatedAt    string  `json:"createdAt"`
}

// GetSellerOrders handles GET /api/v1/seller/orders - the seller dashboard.
func (s *Server) GetSellerOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var statusFilter *order.SellerStatus
	if raw := ctx.QueryParam("status"); raw != "" {
		status, parseErr := parseSellerStatus(raw)
		if parseErr != nil {
			return badRequest(ctx, parseErr)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetSellerOrdersQuery(actor.ID(), statusFilter)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getSellerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]sellerOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = sellerOrderResponse{
			ID:           o.ID.String(),
			Number:       o.Number,
			BuyerID:      o.BuyerID.String(),
			Status:       o.Status.String(),
			SellerStatus: o.SellerStatus.String(),
			Total:        o.Total,
			CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type notificationResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Priority  string            `json:"priority"`
	IsRead    bool              `json:"isRead"`
	CreatedAt string            `json:"createdAt"`
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	offset, _ := strconv.Atoi(ctx.QueryParam("offset"))

	query, err := queries.NewGetNotificationsQuery(actor, limit, offset)
	if err != nil {
		return badRequest(ctx, err)
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = notificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type.String(),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			Priority:  n.Priority.String(),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) GetUnreadCount(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetUnreadCountQuery(actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	count, err := s.getUnreadCountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, unreadCountResponse{Count: count})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMarkAllNotificationsReadCommand(actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.markAllReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteNotification handles DELETE /api/v1/notifications/:id.
func (s *Server) DeleteNotification(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteNotificationCommand(notificationID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deleteNotificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actorFromRequest reads the gateway-forwarded identity headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-Id"))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid X-User-Id header")
	}

	role, err := parseRole(ctx.Request().Header.Get("X-User-Role"))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}

func parseRole(raw string) (kernel.Role, error) {
	for _, role := range kernel.AllRoles() {
		if role.String() == raw {
			return role, nil
		}
	}
	return kernel.RoleUnknown, errors.New("missing or invalid X-User-Role header")
}

func parseSellerStatus(raw string) (order.SellerStatus, error) {
	for _, status := range []order.SellerStatus{
		order.SellerPending, order.SellerConfirmed, order.SellerPreparing,
		order.SellerReady, order.SellerCancelled,
	} {
		if status.String() == raw {
			return status, nil
		}
	}
	return order.SellerStatusUnknown, errors.New("unknown seller status: " + raw)
}

func parseDeliveryStatus(raw string) (order.DeliveryStatus, error) {
	for _, status := range []order.DeliveryStatus{
		order.DeliveryPending, order.DeliveryAssigned, order.DeliveryAccepted,
		order.DeliveryPickedUp, order.DeliveryInTransit, order.DeliveryDelivered,
	} {
		if status.String() == raw {
			return status, nil
		}
	}
	return order.DeliveryStatusUnknown, errors.New("unknown delivery status: " + raw)
}

func buildItem(it checkoutItem) (order.Item, error) {
	productID, err := kernel.UUIDFromString(it.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	sellerID, err := kernel.UUIDFromString(it.SellerID)
	if err != nil {
		return order.Item{}, err
	}
	snapshot, err := order.NewPaymentSnapshot(it.BusinessName, it.AccountNumber, it.AccountName)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, it.Name, it.Price, it.Quantity, it.ImageURL, sellerID, snapshot)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// writeError maps the domain error taxonomy to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrDuplicateIdentifier):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}
