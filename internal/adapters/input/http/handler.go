package http

import (
	"errors"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/input"
	"github.com/dhyanpatel/TourneyFlights/pkg/validator"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       input.FlightSearchService
	db        *gorm.DB
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.FlightSearchService, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		db:        db,
		validator: validator.New(),
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := hdl.db.DB()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	err = sqlDB.Ping()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// CreateSession func
// CreateSession godoc
// @Summary Create search session
// @Description Create a search session from provider credentials and search configuration
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions [post]
// @Produce json
// @param CreateSession body CreateSessionRequest true "CreateSession"
func (hdl *HTTPHandler) CreateSession(c *fiber.Ctx) error {
	var request CreateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{Status: BadRequest}
		msg.Status.Message = []string{err.Error()}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	domainReq := domain.CreateSessionRequest{
		Credentials: request.Credentials,
		Config: domain.SessionConfig{
			Origin:          domain.Airport(request.Origin),
			FriendAirports:  toAirports(request.FriendAirports),
			LookbackMonths:  request.LookbackMonths,
			LookaheadMonths: request.LookaheadMonths,
			TripLengthDays:  request.TripLengthDays,
		},
	}
	info, err := hdl.srv.CreateSession(c.Context(), domainReq)
	if err != nil {
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toSessionResponse(info)})
}

// GetSession func
// GetSession godoc
// @Summary Get session info
// @Description Read a session's configuration and accumulated search state counters
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id} [get]
// @Produce json
// @param id path string true "session id"
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	info, err := hdl.srv.GetSession(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toSessionResponse(info)})
}

// DeleteSession func
// DeleteSession godoc
// @Summary Terminate session
// @Description Explicitly terminate a session before its time-to-live elapses
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id} [delete]
// @Produce json
// @param id path string true "session id"
func (hdl *HTTPHandler) DeleteSession(c *fiber.Ctx) error {
	if err := hdl.srv.DeleteSession(c.Params("id")); err != nil {
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// Search func
// Search godoc
// @Summary Batch flight search
// @Description Resolve candidates from filters, fetch quotes sequentially and merge into the session
// @Tags SEARCH
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/search [post]
// @Produce json
// @param id path string true "session id"
// @param Search body SearchRequest true "Search"
func (hdl *HTTPHandler) Search(c *fiber.Ctx) error {
	filters, ok := hdl.parseSearchRequest(c)
	if !ok {
		return nil
	}

	result, err := hdl.srv.Search(c.Context(), c.Params("id"), filters)
	if err != nil {
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SearchResponse{
		Results:     toCandidateResults(result.Results),
		TotalQuotes: result.TotalQuotes,
	}})
}

// Quotes func
// Quotes godoc
// @Summary Read accumulated quotes
// @Description Filtered view over the session's accumulated bucket results, cheapest first
// @Tags SEARCH
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/quotes [get]
// @Produce json
// @param id path string true "session id"
// @param airport query string false "destination airport"
// @param region query string false "tournament region"
// @param max_price query number false "maximum quote price"
// @param name query string false "tournament name substring"
// @param friends_only query bool false "restrict to friend airports"
// @param limit query int false "result limit"
func (hdl *HTTPHandler) Quotes(c *fiber.Ctx) error {
	var request QuoteQueryRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	filters := domain.QuoteFilters{
		Region:       request.Region,
		MaxPrice:     request.MaxPrice,
		NameContains: request.Name,
		FriendsOnly:  request.FriendsOnly,
		Limit:        request.Limit,
	}
	if request.Airport != nil {
		airport := domain.Airport(*request.Airport)
		filters.Airport = &airport
	}

	buckets, err := hdl.srv.Quotes(c.Params("id"), filters)
	if err != nil {
		logrus.Errorln(err)
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: buckets})
}

// parseSearchRequest parses and validates a search body into domain filters.
// On failure it writes the error response and reports false.
func (hdl *HTTPHandler) parseSearchRequest(c *fiber.Ctx) (domain.SearchFilters, bool) {
	var request SearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			logrus.Errorln(err)
			c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
			return domain.SearchFilters{}, false
		}
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{Status: BadRequest}
		msg.Status.Message = []string{err.Error()}
		c.Status(fiber.StatusBadRequest).JSON(msg)
		return domain.SearchFilters{}, false
	}

	filters := domain.SearchFilters{
		MaxResults: request.MaxResults,
		SkipCache:  request.SkipCache,
	}
	if request.Destination != nil {
		airport := domain.Airport(*request.Destination)
		filters.Destination = &airport
	}
	if request.DepartDate != nil {
		depart, err := domain.ParseDate(*request.DepartDate)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
			return domain.SearchFilters{}, false
		}
		filters.DepartDate = &depart
	}
	if request.ReturnDate != nil {
		ret, err := domain.ParseDate(*request.ReturnDate)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
			return domain.SearchFilters{}, false
		}
		filters.ReturnDate = &ret
	}
	return filters, true
}

// errorResponse maps domain errors onto the response envelope.
func (hdl *HTTPHandler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidSearchInput):
		msg := ResponseBody{Status: BadRequest}
		msg.Status.Message = []string{err.Error()}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	case errors.Is(err, domain.ErrTournamentSourceUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(ResponseBody{Status: BadGateway})
	default:
		msg := ResponseBody{Status: InternalServerError}
		msg.Status.Message = []string{err.Error()}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
}

func toAirports(codes []string) []domain.Airport {
	airports := make([]domain.Airport, 0, len(codes))
	for _, code := range codes {
		airports = append(airports, domain.Airport(code))
	}
	return airports
}
