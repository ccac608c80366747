// Package http exposes the delivery lifecycle and read queries over REST.
// Handlers translate wire DTOs into commands and queries, and business
// errors into HTTP status codes; no domain logic lives here.
package http

import (
	"errors"
	"net/http"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/application/usecases/queries"
	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/model/station"
	"relaypost/internal/core/domain/services"
	"relaypost/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	initiateDeliveryHandler commands.InitiateDeliveryCommandHandler
	claimPackageHandler     commands.ClaimPackageCommandHandler
	dropoffPackageHandler   commands.DropoffPackageCommandHandler
	recipientPickupHandler  commands.RecipientPickupCommandHandler

	// Query handlers
	getDeliveryByIDHandler            queries.GetDeliveryByIDQueryHandler
	getShipperDeliveriesHandler       queries.GetShipperDeliveriesQueryHandler
	getCourierActiveDeliveriesHandler queries.GetCourierActiveDeliveriesQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	initiateDeliveryHandler commands.InitiateDeliveryCommandHandler,
	claimPackageHandler commands.ClaimPackageCommandHandler,
	dropoffPackageHandler commands.DropoffPackageCommandHandler,
	recipientPickupHandler commands.RecipientPickupCommandHandler,
	getDeliveryByIDHandler queries.GetDeliveryByIDQueryHandler,
	getShipperDeliveriesHandler queries.GetShipperDeliveriesQueryHandler,
	getCourierActiveDeliveriesHandler queries.GetCourierActiveDeliveriesQueryHandler,
) *Server {
	return &Server{
		initiateDeliveryHandler:           initiateDeliveryHandler,
		claimPackageHandler:               claimPackageHandler,
		dropoffPackageHandler:             dropoffPackageHandler,
		recipientPickupHandler:            recipientPickupHandler,
		getDeliveryByIDHandler:            getDeliveryByIDHandler,
		getShipperDeliveriesHandler:       getShipperDeliveriesHandler,
		getCourierActiveDeliveriesHandler: getCourierActiveDeliveriesHandler,
	}
}

// RegisterRoutes attaches all delivery endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/deliveries", s.InitiateDelivery)
	api.POST("/deliveries/:id/claim", s.ClaimPackage)
	api.POST("/deliveries/:id/dropoff", s.DropoffPackage)
	api.POST("/deliveries/:id/pickup", s.RecipientPickup)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.GET("/shippers/:id/deliveries", s.GetShipperDeliveries)
	api.GET("/couriers/:id/deliveries", s.GetCourierActiveDeliveries)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
}

// InitiateDelivery handles POST /api/v1/deliveries.
func (s *Server) InitiateDelivery(ctx echo.Context) error {
	var req InitiateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipperID, err := kernel.UUIDFromString(req.ShipperID)
	if err != nil {
		return badRequest(ctx, "Invalid shipper id")
	}
	originAPID, err := kernel.UUIDFromString(req.OriginAPID)
	if err != nil {
		return badRequest(ctx, "Invalid origin access point id")
	}
	destinationAPID, err := kernel.UUIDFromString(req.DestinationAPID)
	if err != nil {
		return badRequest(ctx, "Invalid destination access point id")
	}

	var productID *kernel.UUID
	if req.ProductID != nil {
		pID, pErr := kernel.UUIDFromString(*req.ProductID)
		if pErr != nil {
			return badRequest(ctx, "Invalid product id")
		}
		productID = &pID
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewInitiateDeliveryCommand(
		deliveryID, shipperID, productID, originAPID, destinationAPID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery request: "+err.Error())
	}

	if err := s.initiateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, InitiateDeliveryResponse{ID: deliveryID.String()})
}

// ClaimPackage handles POST /api/v1/deliveries/:id/claim.
func (s *Server) ClaimPackage(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req ClaimPackageRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewClaimPackageCommand(courierID, deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid claim request: "+err.Error())
	}

	if err := s.claimPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DropoffPackage handles POST /api/v1/deliveries/:id/dropoff.
func (s *Server) DropoffPackage(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req DropoffPackageRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	accessPointID, err := kernel.UUIDFromString(req.AccessPointID)
	if err != nil {
		return badRequest(ctx, "Invalid access point id")
	}

	mode := services.ModeHops
	if req.Mode != "" {
		mode, err = services.ParseMode(req.Mode)
		if err != nil {
			return badRequest(ctx, "Invalid progress mode")
		}
	}

	cmd, err := commands.NewDropoffPackageCommand(courierID, deliveryID, accessPointID, mode)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff request: "+err.Error())
	}

	if err := s.dropoffPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecipientPickup handles POST /api/v1/deliveries/:id/pickup.
func (s *Server) RecipientPickup(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var req RecipientPickupRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecipientPickupCommand(deliveryID, req.Code)
	if err != nil {
		return badRequest(ctx, "Invalid pickup request: "+err.Error())
	}

	if err := s.recipientPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return businessError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	query, err := queries.NewGetDeliveryByIDQuery(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	view, err := s.getDeliveryByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryViewFromResponse(view))
}

// GetShipperDeliveries handles GET /api/v1/shippers/:id/deliveries.
func (s *Server) GetShipperDeliveries(ctx echo.Context) error {
	shipperID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipper id")
	}

	query, err := queries.NewGetShipperDeliveriesQuery(shipperID)
	if err != nil {
		return badRequest(ctx, "Invalid shipper id")
	}

	summaries, err := s.getShipperDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	response := make([]DeliverySummaryView, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryViewFromResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierActiveDeliveries handles GET /api/v1/couriers/:id/deliveries.
func (s *Server) GetCourierActiveDeliveries(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	query, err := queries.NewGetCourierActiveDeliveriesQuery(courierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	summaries, err := s.getCourierActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return businessError(ctx, err)
	}

	response := make([]DeliverySummaryView, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, summaryViewFromResponse(summary))
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// businessError maps application and domain errors onto HTTP status codes.
func businessError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, delivery.ErrStatusConflict),
		errors.Is(err, commands.ErrCapacityExceeded):
		code = http.StatusConflict
	case errors.Is(err, delivery.ErrNotAssignedCourier),
		errors.Is(err, account.ErrRoleNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, account.ErrInsufficientBalance),
		errors.Is(err, delivery.ErrInvalidCode),
		errors.Is(err, station.ErrNoPathFound),
		errors.Is(err, services.ErrPositionNotOnPath),
		errors.Is(err, services.ErrInvalidRange):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
