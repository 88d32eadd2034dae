package http

import (
	"errors"
	"net/http"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/pickupotp"
	"grocery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Identity headers. The storefront gateway authenticates callers and passes
// the verified identity through; this service trusts the headers as-is.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a request validator for struct tags.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Server handles HTTP requests for the order lifecycle.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        *commands.PlaceOrderCommandHandler
	transitionOrderHandler   *commands.TransitionOrderCommandHandler
	claimOrderHandler        *commands.ClaimOrderCommandHandler
	generatePickupOtpHandler *commands.GeneratePickupOtpCommandHandler
	verifyPickupOtpHandler   *commands.VerifyPickupOtpCommandHandler
	setAvailabilityHandler   *commands.SetPartnerAvailabilityCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler
	getStoreOrdersHandler      queries.GetStoreOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler *commands.PlaceOrderCommandHandler,
	transitionOrderHandler *commands.TransitionOrderCommandHandler,
	claimOrderHandler *commands.ClaimOrderCommandHandler,
	generatePickupOtpHandler *commands.GeneratePickupOtpCommandHandler,
	verifyPickupOtpHandler *commands.VerifyPickupOtpCommandHandler,
	setAvailabilityHandler *commands.SetPartnerAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler,
	getStoreOrdersHandler queries.GetStoreOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		transitionOrderHandler:     transitionOrderHandler,
		claimOrderHandler:          claimOrderHandler,
		generatePickupOtpHandler:   generatePickupOtpHandler,
		verifyPickupOtpHandler:     verifyPickupOtpHandler,
		setAvailabilityHandler:     setAvailabilityHandler,
		getOrderHandler:            getOrderHandler,
		getUnassignedOrdersHandler: getUnassignedOrdersHandler,
		getStoreOrdersHandler:      getStoreOrdersHandler,
	}
}

// RegisterRoutes binds all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.PlaceOrder)
	v1.GET("/orders/unassigned", s.GetUnassignedOrders)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.POST("/orders/:orderId/status", s.TransitionOrder)
	v1.POST("/orders/:orderId/claim", s.ClaimOrder)
	v1.POST("/orders/:orderId/pickup-otp", s.GeneratePickupOtp)
	v1.POST("/orders/:orderId/pickup-otp/verify", s.VerifyPickupOtp)
	v1.GET("/stores/:storeId/orders", s.GetStoreOrders)
	v1.PUT("/partners/availability", s.SetPartnerAvailability)
}

// PlaceOrder handles POST /api/v1/orders - checkout, creating a pending order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actorID, role, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RoleCustomer {
		return forbidden(ctx, "Only customers can place orders")
	}

	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return badRequest(ctx, err.Error())
	}

	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store_id")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, line := range request.Items {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return badRequest(ctx, "Invalid product_id")
		}
		unitPrice, err := kernel.NewMoney(line.UnitPrice)
		if err != nil {
			return badRequest(ctx, "Invalid unit_price")
		}
		item, err := order.NewItem(productID, line.ProductName, unitPrice, line.Quantity)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		items = append(items, item)
	}

	deliveryFee, err := kernel.NewMoney(request.DeliveryFee)
	if err != nil {
		return badRequest(ctx, "Invalid delivery_fee")
	}
	discount, err := kernel.NewMoney(request.Discount)
	if err != nil {
		return badRequest(ctx, "Invalid discount")
	}

	command, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), actorID, storeID,
		request.DeliveryAddress, items, deliveryFee, discount,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(placed))
}

// GetOrder handles GET /api/v1/orders/:orderId - the tracking snapshot.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(snapshot))
}

// TransitionOrder handles POST /api/v1/orders/:orderId/status - a lifecycle
// transition requested by the caller identified in the headers.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actorID, actorRole, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request TransitionOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return badRequest(ctx, err.Error())
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status")
	}

	command, err := commands.NewTransitionOrderCommand(orderID, target, actorID, actorRole)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	transitioned, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(transitioned))
}

// ClaimOrder handles POST /api/v1/orders/:orderId/claim - a delivery partner
// attempting to take an unassigned ready_for_pickup order.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	partnerID, role, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RolePartner {
		return forbidden(ctx, "Only delivery partners can claim orders")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewClaimOrderCommand(orderID, partnerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(claimed))
}

// GeneratePickupOtp handles POST /api/v1/orders/:orderId/pickup-otp - the
// store requesting a pickup code for a claimed order. Returns the live code
// unchanged when one already exists.
func (s *Server) GeneratePickupOtp(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewGeneratePickupOtpCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	otp, err := s.generatePickupOtpHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pickupOtpFromDomain(otp))
}

// VerifyPickupOtp handles POST /api/v1/orders/:orderId/pickup-otp/verify -
// the assigned partner presenting the code at the store counter.
func (s *Server) VerifyPickupOtp(ctx echo.Context) error {
	partnerID, role, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RolePartner {
		return forbidden(ctx, "Only delivery partners can verify pickup codes")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request VerifyPickupOtpRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return badRequest(ctx, err.Error())
	}

	command, err := commands.NewVerifyPickupOtpCommand(orderID, partnerID, request.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	verified, err := s.verifyPickupOtpHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(verified))
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned - the claimable
// board shown to delivery partners.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	rows, err := s.getUnassignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]UnassignedOrder, len(rows))
	for i, row := range rows {
		response[i] = UnassignedOrder{
			ID:              row.ID.String(),
			StoreID:         row.StoreID.String(),
			DeliveryAddress: row.DeliveryAddress,
			Total:           row.Total.Amount(),
			ItemCount:       row.ItemCount,
			CreatedAt:       row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStoreOrders handles GET /api/v1/stores/:storeId/orders - the store's
// board of orders still in flight.
func (s *Server) GetStoreOrders(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeId"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	query, err := queries.NewGetStoreOrdersQuery(storeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getStoreOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]StoreOrder, len(rows))
	for i, row := range rows {
		var partnerID *string
		if row.PartnerID != nil {
			id := row.PartnerID.String()
			partnerID = &id
		}
		response[i] = StoreOrder{
			ID:              row.ID.String(),
			CustomerID:      row.CustomerID.String(),
			PartnerID:       partnerID,
			Status:          row.Status.String(),
			Total:           row.Total.Amount(),
			DeliveryAddress: row.DeliveryAddress,
			PickupVerified:  row.PickupVerified,
			CreatedAt:       row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetPartnerAvailability handles PUT /api/v1/partners/availability - the
// calling partner toggling whether they receive the claimable board.
func (s *Server) SetPartnerAvailability(ctx echo.Context) error {
	partnerID, role, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RolePartner {
		return forbidden(ctx, "Only delivery partners can set availability")
	}

	var request SetAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return badRequest(ctx, err.Error())
	}

	command, err := commands.NewSetPartnerAvailabilityCommand(partnerID, *request.IsAvailable)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	profile, err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, partnerFromDomain(profile))
}

func actorFromHeaders(ctx echo.Context) (kernel.UUID, order.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errors.New("missing or invalid X-User-Id header")
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errors.New("missing or invalid X-User-Role header")
	}

	return actorID, role, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func forbidden(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusForbidden, Error{
		Code:    http.StatusForbidden,
		Message: message,
	})
}

// domainError maps use case failures to HTTP statuses. Unrecognized errors
// become an opaque 500 so internals do not leak to callers.
func domainError(ctx echo.Context, err error) error {
	var incorrectCode *pickupotp.IncorrectCodeError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrOrderUnavailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrActorMismatch),
		errors.Is(err, commands.ErrPartnerMismatch):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrNoPartnerAssigned),
		errors.Is(err, commands.ErrOrderNotAwaitingVerification),
		errors.Is(err, pickupotp.ErrAlreadyUsed),
		errors.Is(err, pickupotp.ErrAttemptsExhausted):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, pickupotp.ErrExpired):
		return ctx.JSON(http.StatusGone, Error{
			Code:    http.StatusGone,
			Message: err.Error(),
		})
	case errors.As(err, &incorrectCode):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: incorrectCode.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
