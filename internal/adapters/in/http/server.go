package http

import (
	"errors"
	"net/http"

	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/application/usecases/queries"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server handles HTTP requests for the delivery API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	takeOrderHandler          commands.TakeOrderCommandHandler
	arriveAtRestaurantHandler commands.ArriveAtRestaurantCommandHandler
	markDeliveredHandler      commands.MarkDeliveredCommandHandler
	updateLocationHandler     commands.UpdateLocationCommandHandler
	buyCreditsHandler         commands.BuyCreditsCommandHandler
	adjustCreditsHandler      commands.AdjustCreditsCommandHandler
	ensureBalanceHandler      commands.EnsureBalanceCommandHandler

	// Query handlers
	getDeliveryHandler         queries.GetDeliveryQueryHandler
	getDeliveryLocationHandler queries.GetDeliveryLocationQueryHandler
	getCreditsBalanceHandler   queries.GetCreditsBalanceQueryHandler

	// startingCredits is granted once when a balance row is first created
	// through the onboarding endpoint.
	startingCredits decimal.Decimal
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	takeOrderHandler commands.TakeOrderCommandHandler,
	arriveAtRestaurantHandler commands.ArriveAtRestaurantCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	buyCreditsHandler commands.BuyCreditsCommandHandler,
	adjustCreditsHandler commands.AdjustCreditsCommandHandler,
	ensureBalanceHandler commands.EnsureBalanceCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getDeliveryLocationHandler queries.GetDeliveryLocationQueryHandler,
	getCreditsBalanceHandler queries.GetCreditsBalanceQueryHandler,
	startingCredits decimal.Decimal,
) *Server {
	return &Server{
		takeOrderHandler:           takeOrderHandler,
		arriveAtRestaurantHandler:  arriveAtRestaurantHandler,
		markDeliveredHandler:       markDeliveredHandler,
		updateLocationHandler:      updateLocationHandler,
		buyCreditsHandler:          buyCreditsHandler,
		adjustCreditsHandler:       adjustCreditsHandler,
		ensureBalanceHandler:       ensureBalanceHandler,
		getDeliveryHandler:         getDeliveryHandler,
		getDeliveryLocationHandler: getDeliveryLocationHandler,
		getCreditsBalanceHandler:   getCreditsBalanceHandler,
		startingCredits:            startingCredits,
	}
}

// RegisterRoutes binds all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries/take-order", s.TakeOrder)
	api.POST("/deliveries/:delivery_id/arrive-at-restaurant", s.ArriveAtRestaurant)
	api.POST("/deliveries/:delivery_id/mark-delivered", s.MarkDelivered)
	api.POST("/deliveries/:delivery_id/location", s.UpdateLocation)
	api.GET("/deliveries/:delivery_id", s.GetDelivery)
	api.GET("/deliveries/:delivery_id/location", s.GetDeliveryLocation)

	api.POST("/credits/buy", s.BuyCredits)
	api.POST("/credits/adjust", s.AdjustCredits)
	api.POST("/credits/ensure", s.EnsureBalance)
	api.GET("/credits/:owner_id", s.GetCreditsBalance)
}

// TakeOrder handles POST /api/v1/deliveries/take-order - a courier claims an order.
func (s *Server) TakeOrder(ctx echo.Context) error {
	var request TakeOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	location, err := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewTakeOrderCommand(orderID, courierID, location)
	if err != nil {
		return badRequest(ctx, "Invalid take order data: "+err.Error())
	}

	result, err := s.takeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, TakeOrderResponse{
		DeliveryID:   result.DeliveryID.String(),
		TrackingCode: result.TrackingCode,
	})
}

// ArriveAtRestaurant handles POST /api/v1/deliveries/:delivery_id/arrive-at-restaurant.
func (s *Server) ArriveAtRestaurant(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CourierLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	location, err := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewArriveAtRestaurantCommand(deliveryID, courierID, location)
	if err != nil {
		return badRequest(ctx, "Invalid arrival data: "+err.Error())
	}

	result, err := s.arriveAtRestaurantHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFrom(result))
}

// MarkDelivered handles POST /api/v1/deliveries/:delivery_id/mark-delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	cmd, err := commands.NewMarkDeliveredCommand(deliveryID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	result, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFrom(result))
}

// UpdateLocation handles POST /api/v1/deliveries/:delivery_id/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	var request CourierLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	location, err := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewUpdateLocationCommand(deliveryID, courierID, location)
	if err != nil {
		return badRequest(ctx, "Invalid location data: "+err.Error())
	}

	result, err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryLocationResponse{
		TrackingCode: result.TrackingCode,
		Location: &Location{
			Latitude:  result.Location.Latitude(),
			Longitude: result.Location.Longitude(),
		},
		UpdatedAt: result.UpdatedAt,
	})
}

// GetDelivery handles GET /api/v1/deliveries/:delivery_id - full delivery details.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	info, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	response := DeliveryResponse{
		ID:           info.ID.String(),
		TrackingCode: info.TrackingCode,
		CourierID:    info.CourierID.String(),
		ClientID:     info.ClientID.String(),
		OrderID:      info.OrderID.String(),
		OrderStatus:  info.OrderStatus,
	}
	if info.Location != nil {
		response.Location = &Location{
			Latitude:  info.Location.Latitude,
			Longitude: info.Location.Longitude,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryLocation handles GET /api/v1/deliveries/:delivery_id/location - tracking view.
func (s *Server) GetDeliveryLocation(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	query, err := queries.NewGetDeliveryLocationQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id: "+err.Error())
	}

	info, err := s.getDeliveryLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	response := DeliveryLocationResponse{
		TrackingCode: info.TrackingCode,
		UpdatedAt:    info.UpdatedAt,
	}
	if info.Location != nil {
		response.Location = &Location{
			Latitude:  info.Location.Latitude,
			Longitude: info.Location.Longitude,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// BuyCredits handles POST /api/v1/credits/buy - a courier tops up their balance.
func (s *Server) BuyCredits(ctx echo.Context) error {
	var request CreditsAmountRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, amount, err := parseCreditsAmount(request)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewBuyCreditsCommand(ownerID, amount)
	if err != nil {
		return badRequest(ctx, "Invalid purchase data: "+err.Error())
	}

	result, err := s.buyCreditsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CreditsBalanceResponse{
		OwnerID: result.OwnerID.String(),
		Amount:  result.Amount.StringFixed(2),
	})
}

// AdjustCredits handles POST /api/v1/credits/adjust - an operator corrects a balance.
func (s *Server) AdjustCredits(ctx echo.Context) error {
	var request AdjustCreditsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, amount, err := parseCreditsAmount(request.CreditsAmountRequest)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	direction, err := parseAdjustDirection(request.Direction)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdjustCreditsCommand(ownerID, amount, direction)
	if err != nil {
		return badRequest(ctx, "Invalid adjustment data: "+err.Error())
	}

	result, err := s.adjustCreditsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CreditsBalanceResponse{
		OwnerID: result.OwnerID.String(),
		Amount:  result.Amount.StringFixed(2),
	})
}

// EnsureBalance handles POST /api/v1/credits/ensure - onboarding call that
// creates the owner's balance with the configured starting credits. Idempotent:
// an existing balance is left untouched.
func (s *Server) EnsureBalance(ctx echo.Context) error {
	var request EnsureBalanceRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(request.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id: "+err.Error())
	}

	cmd, err := commands.NewEnsureBalanceCommand(ownerID, s.startingCredits)
	if err != nil {
		return badRequest(ctx, "Invalid onboarding data: "+err.Error())
	}

	if err = s.ensureBalanceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCreditsBalance handles GET /api/v1/credits/:owner_id - current balance.
func (s *Server) GetCreditsBalance(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "owner_id")
	if err != nil {
		return badRequest(ctx, "Invalid owner id: "+err.Error())
	}

	query, err := queries.NewGetCreditsBalanceQuery(ownerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id: "+err.Error())
	}

	info, err := s.getCreditsBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CreditsBalanceResponse{
		OwnerID: info.OwnerID.String(),
		Amount:  info.Amount.StringFixed(2),
	})
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func deliveryResponseFrom(result commands.DeliveryResult) DeliveryResponse {
	response := DeliveryResponse{
		ID:           result.DeliveryID.String(),
		TrackingCode: result.TrackingCode,
		CourierID:    result.CourierID.String(),
		ClientID:     result.ClientID.String(),
		OrderID:      result.OrderID.String(),
		OrderStatus:  result.OrderStatus.String(),
	}
	if result.Location != nil {
		response.Location = &Location{
			Latitude:  result.Location.Latitude(),
			Longitude: result.Location.Longitude(),
		}
	}

	return response
}

func parseCreditsAmount(request CreditsAmountRequest) (kernel.UUID, decimal.Decimal, error) {
	ownerID, err := kernel.UUIDFromString(request.OwnerID)
	if err != nil {
		return kernel.UUID{}, decimal.Decimal{}, errors.New("Invalid owner id: " + err.Error())
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return kernel.UUID{}, decimal.Decimal{}, errors.New("Invalid amount: " + err.Error())
	}

	return ownerID, amount, nil
}

func parseAdjustDirection(value string) (commands.AdjustDirection, error) {
	switch value {
	case "increment":
		return commands.AdjustIncrement, nil
	case "decrement":
		return commands.AdjustDecrement, nil
	default:
		return commands.AdjustUnknown, errors.New("Invalid direction: must be increment or decrement")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// businessError maps use case errors onto HTTP status codes by error kind.
func businessError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrStateIsInvalid), errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
