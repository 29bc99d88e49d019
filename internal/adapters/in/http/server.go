package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/in/http/openapi"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/queries"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultListLimit is used when a list request has no limit parameter.
const DefaultListLimit = 100

type OrderGetter interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type OrderLister interface {
	Handle(ctx context.Context, query queries.ListQuery) ([]queries.OrderView, error)
}

type SubmissionLister interface {
	Handle(ctx context.Context, query queries.ListQuery) ([]queries.SubmissionView, error)
}

type LeaderboardGetter interface {
	Handle(ctx context.Context, query queries.GetLeaderboardQuery) (services.Leaderboard, error)
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      int64     `json:"user_id"`
	FullName    string    `json:"full_name"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	BestScore   int       `json:"best_score"`
	Total       int       `json:"total"`
	BestAt      time.Time `json:"best_at"`
	Attempts    int       `json:"attempts"`
}

type Leaderboard struct {
	QuizID           string             `json:"quiz_id"`
	Participants     int                `json:"participants"`
	AverageBestScore float64            `json:"average_best_score"`
	Entries          []LeaderboardEntry `json:"entries"`
}

var _ openapi.ServerInterface = (*Server)(nil)

// Server serves the read-only operational API.
type Server struct {
	getOrder        OrderGetter
	listOrders      OrderLister
	listSubmissions SubmissionLister
	leaderboard     LeaderboardGetter
	gatherer        prometheus.Gatherer
}

func NewServer(
	getOrder OrderGetter,
	listOrders OrderLister,
	listSubmissions SubmissionLister,
	leaderboard LeaderboardGetter,
	gatherer prometheus.Gatherer,
) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		getOrder:        getOrder,
		listOrders:      listOrders,
		listSubmissions: listSubmissions,
		leaderboard:     leaderboard,
		gatherer:        gatherer,
	}
}

// NewEcho builds an echo instance with every route registered. Requests to
// /api/v1 are validated against the embedded OpenAPI document.
func NewEcho(s *Server) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	if err := s.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Server) Register(e *echo.Echo) error {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return err
	}
	validator, err := openapi.RequestValidator(doc)
	if err != nil {
		return err
	}

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	openapi.RegisterHandlers(e, s, "", validator)
	return openapi.RegisterDocs(e, doc)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid order id")
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid order id")
	}

	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errorJSON(c, http.StatusNotFound, "Order not found")
	}
	if err != nil {
		c.Logger().Errorf("get order %s: %v", id, err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to retrieve order")
	}
	return c.JSON(http.StatusOK, view)
}

// ListOrders handles GET /api/v1/orders?limit=N, newest first.
func (s *Server) ListOrders(c echo.Context, params openapi.ListOrdersParams) error {
	query, err := listQuery(params.Limit)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid limit: "+err.Error())
	}

	views, err := s.listOrders.Handle(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("list orders: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to retrieve orders")
	}
	if views == nil {
		views = []queries.OrderView{}
	}
	return c.JSON(http.StatusOK, views)
}

// ListSubmissions handles GET /api/v1/submissions?limit=N, newest first.
func (s *Server) ListSubmissions(c echo.Context, params openapi.ListSubmissionsParams) error {
	query, err := listQuery(params.Limit)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid limit: "+err.Error())
	}

	views, err := s.listSubmissions.Handle(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("list submissions: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to retrieve submissions")
	}
	if views == nil {
		views = []queries.SubmissionView{}
	}
	return c.JSON(http.StatusOK, views)
}

// GetLeaderboard handles GET /api/v1/quizzes/:quizId/leaderboard.
func (s *Server) GetLeaderboard(c echo.Context, quizID string) error {
	query, err := queries.NewGetLeaderboardQuery(quizID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid quiz id")
	}

	board, err := s.leaderboard.Handle(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("leaderboard %s: %v", quizID, err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to build leaderboard")
	}

	stats := board.Stats()
	response := Leaderboard{
		QuizID:           query.QuizID(),
		Participants:     stats.Participants,
		AverageBestScore: stats.AverageBestScore,
		Entries:          make([]LeaderboardEntry, 0, board.Len()),
	}
	for i, e := range board.Entries() {
		response.Entries = append(response.Entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      e.Participant.UserID.Int64(),
			FullName:    e.Participant.FullName,
			Username:    e.Participant.Username,
			DisplayName: e.Participant.DisplayName(),
			BestScore:   e.BestScore,
			Total:       e.Total,
			BestAt:      e.BestAt,
			Attempts:    e.Attempts,
		})
	}
	return c.JSON(http.StatusOK, response)
}

func listQuery(limit *int) (queries.ListQuery, error) {
	if limit == nil {
		return queries.NewListQuery(DefaultListLimit)
	}
	return queries.NewListQuery(*limit)
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}

// errorHandler renders echo errors, including binding and validation
// failures, in the Error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = errorJSON(c, code, message)
}
