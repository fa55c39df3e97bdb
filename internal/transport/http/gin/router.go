package httpgin

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ticketblock/ticketblock/internal/credential"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/rates"
	redisrepo "github.com/ticketblock/ticketblock/internal/repository/redis"
	"github.com/ticketblock/ticketblock/internal/service"
	"github.com/ticketblock/ticketblock/internal/service/admin"
	"github.com/ticketblock/ticketblock/internal/service/gate"
	"github.com/ticketblock/ticketblock/internal/service/purchase"
	"github.com/ticketblock/ticketblock/internal/service/query"
	"github.com/ticketblock/ticketblock/internal/service/transfer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	rate *rates.Service,
	idem *redisrepo.IdempotencyStore,
	scanLimiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/tickets", handleListTickets(svcs))
	r.GET("/events/:id/tickets/:tid", handleGetTicket(svcs))
	r.GET("/events/:id/availability", handleGetAvailability(svcs))
	r.GET("/events/:id/seatmap", handleGetSeatMap(svcs))
	r.GET("/events/:id/scan-summary", handleScanSummary(svcs))

	r.POST("/events/:id/tickets/:tid/purchase", handlePurchase(svcs, idem))
	r.POST("/events/:id/tickets/:tid/repair-link", handleRepairLink(svcs))

	r.POST("/scan", handleScan(svcs, scanLimiter))
	r.POST("/transfer", handleTransfer(svcs))

	r.GET("/rates", handleGetRate(rate))

	// Admin-API
	// TODO: add admin middleware
	adm := r.Group("/admin")
	{
		adm.POST("/events", handleCreateEvent(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Get event
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  domain.Event
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		e, err := svcs.Query.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  List event tickets
// @Param    id  path  int  true  "Event ID"
// @Success  200  {array}  domain.Ticket
// @Router   /events/{id}/tickets [get]
func handleListTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		tickets, err := svcs.Query.ListEventTickets(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tickets)
	}
}

// @Summary  Get one ticket record
// @Param    id   path  int  true  "Event ID"
// @Param    tid  path  int  true  "Ticket ID"
// @Success  200  {object}  domain.Ticket
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/tickets/{tid} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		ticketID, ok := parseUint64Param(c, "tid")
		if !ok {
			return
		}
		t, err := svcs.Query.GetTicket(c.Request.Context(), eventID, ticketID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Get availability counters
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  domain.EventCounts
// @Router   /events/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		cnt, err := svcs.Query.CountsByStatus(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, cnt, "public, max-age=15", true)
	}
}

// @Summary  Get seat map with live status
// @Param    id  path  int  true  "Event ID"
// @Success  200  {array}  domain.SeatWithStatus
// @Router   /events/{id}/seatmap [get]
func handleGetSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		seats, err := svcs.Query.SeatMap(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, seats, "public, max-age=15", true)
	}
}

// @Summary  Gate-side scan totals
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  gate.EntrySummary
// @Router   /events/{id}/scan-summary [get]
func handleScanSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		counts, err := svcs.Gate.Summary(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}

// @Summary  Purchase a ticket (idempotent)
// @Param    id   path  int  true  "Event ID"
// @Param    tid  path  int  true  "Ticket ID"
// @Param    req  body  PurchaseRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} PurchaseResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "ticket already sold / idem in progress"
// @Failure  502 {object} ErrorResponse "workflow failed after a committed step"
// @Router   /events/{id}/tickets/{tid}/purchase [post]
func handlePurchase(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		ticketID, ok := parseUint64Param(c, "tid")
		if !ok {
			return
		}
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemPurchase(eventID, ticketID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		receipt, err := svcs.Purchase.Purchase(
			c.Request.Context(),
			eventID,
			ticketID,
			domain.Address(strings.ToLower(req.Buyer)),
			domain.Amount(req.Payment),
		)
		if err != nil {
			// a partial failure is a real outcome and must not be
			// replayed under the same idempotency key
			var pErr *domain.PartialWorkflowError
			if !errors.As(err, &pErr) && idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := purchaseResponse(receipt)

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Repair a sold-but-unlinked ticket
// @Param    id   path  int  true  "Event ID"
// @Param    tid  path  int  true  "Ticket ID"
// @Param    req  body  RepairLinkRequest true "payload"
// @Success  204
// @Failure  409 {object} ErrorResponse
// @Router   /events/{id}/tickets/{tid}/repair-link [post]
func handleRepairLink(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUint64Param(c, "id")
		if !ok {
			return
		}
		ticketID, ok := parseUint64Param(c, "tid")
		if !ok {
			return
		}
		var req RepairLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Purchase.RepairLink(
			c.Request.Context(),
			eventID,
			ticketID,
			req.TokenID,
			domain.Address(strings.ToLower(req.Owner)),
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Scan a credential at the gate
// @Param    req body  credential.Payload true "credential payload"
// @Success  200 {object} ScanResponse
// @Failure  400 {object} ErrorResponse "malformed payload or signature"
// @Failure  409 {object} ErrorResponse "already scanned / not sold / wrong owner"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /scan [post]
func handleScan(
	svcs *service.Services,
	limiter *redisrepo.SlidingWindowLimiter,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil {
			allowed, _, retryAfter, err := limiter.Allow(
				c.Request.Context(),
				"ip:"+c.ClientIP(),
			)
			if err == nil && !allowed {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
		if err != nil {
			badRequest(c, "cannot read body")
			return
		}

		// strict wire shape: exactly event_id, ticket_id, signature
		p, err := credential.ParsePayload(body)
		if err != nil {
			respondErr(c, err)
			return
		}

		res, err := svcs.Gate.Scan(c.Request.Context(), p)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, ScanResponse{
			EventID:  res.EventID,
			TicketID: res.TicketID,
			Zone:     res.Zone,
			Row:      res.Row,
			Column:   res.Column,
			Owner:    string(res.Owner),
		})
	}
}

// @Summary  Transfer a credential token
// @Param    req body  TransferRequest true "payload"
// @Success  204
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /transfer [post]
func handleTransfer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Transfer.Transfer(
			c.Request.Context(),
			req.EventID,
			req.TicketID,
			req.TokenID,
			domain.Address(strings.ToLower(req.From)),
			domain.Address(strings.ToLower(req.To)),
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Display-currency rate
// @Success  200 {object} rates.Rate
// @Failure  502 {object} ErrorResponse "rate upstream unavailable"
// @Router   /rates [get]
func handleGetRate(rate *rates.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rate == nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "rates disabled"})
			return
		}
		r, err := rate.Current(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "rate unavailable"})
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, r, "public, max-age=60", true)
	}
}

// @Summary  Create event and seat inventory
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} CreateEventResponse
// @Failure  409 {object} ErrorResponse
// @Router   /admin/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}

		in := admin.CreateEventInput{
			EventID:     req.EventID,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Venue:       req.Venue,
			Capacity:    req.Capacity,
			Starts:      starts,
		}
		for _, z := range req.Zones {
			in.Zones = append(in.Zones, z.toDomain())
		}

		ev, err := svcs.Admin.CreateEvent(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}

		total := 0
		zones := in.Zones
		if len(zones) == 0 {
			zones = admin.DefaultZones
		}
		for _, z := range zones {
			total += z.Quantity
		}

		c.JSON(http.StatusCreated, CreateEventResponse{
			EventID: ev.ID,
			Tickets: total,
		})
	}
}

// --- Helpers ---

func purchaseResponse(r *purchase.Receipt) PurchaseResponse {
	return PurchaseResponse{
		EventID:     r.EventID,
		TicketID:    r.TicketID,
		TokenID:     r.TokenID,
		Owner:       string(r.Owner),
		Price:       int64(r.Price),
		MetadataRef: r.MetadataRef,
		State:       string(r.State),
	}
}

func parseUint64Param(c *gin.Context, name string) (uint64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var vErr *domain.ValidationError
	var cErr *domain.StateConflictError
	var pErr *domain.PartialWorkflowError
	var uErr *domain.UnavailableError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Reason})
	case errors.As(err, &pErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: pErr.Error(),
			Step:  pErr.Step,
			State: pErr.Committed,
		})
	case errors.As(err, &uErr):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "service unavailable"})
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: cErr.Reason})
	// purchase service
	case errors.Is(err, purchase.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
	case errors.Is(err, purchase.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
	case errors.Is(err, purchase.ErrEventInactive):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event is not active"})
	// gate service
	case errors.Is(err, gate.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
	// transfer service
	case errors.Is(err, transfer.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
	case errors.Is(err, transfer.ErrTokenMismatch):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "token does not back this ticket"})
	case errors.Is(err, ledger.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized"})
	// query service
	case errors.Is(err, query.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
	case errors.Is(err, query.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
	// admin service
	case errors.Is(err, admin.ErrEventConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event already exists"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
