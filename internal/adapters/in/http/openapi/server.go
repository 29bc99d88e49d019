package openapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListSubmissionsParams defines parameters for ListSubmissions.
type ListSubmissionsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface is one method per operation of openapi.yaml.
type ServerInterface interface {
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/v1/submissions)
	ListSubmissions(ctx echo.Context, params ListSubmissionsParams) error
	// (GET /api/v1/quizzes/{quizId}/leaderboard)
	GetLeaderboard(ctx echo.Context, quizId string) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) ListSubmissions(ctx echo.Context) error {
	var params ListSubmissionsParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return w.Handler.ListSubmissions(ctx, params)
}

func (w *ServerInterfaceWrapper) GetLeaderboard(ctx echo.Context) error {
	var quizID string
	err := runtime.BindStyledParameterWithOptions("simple", "quizId", ctx.Param("quizId"), &quizID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter quizId: %s", err))
	}
	return w.Handler.GetLeaderboard(ctx, quizID)
}

// EchoRouter is the part of *echo.Echo and *echo.Group the routes need.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string, m ...echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", w.ListOrders, m...)
	router.GET(baseURL+"/api/v1/orders/:id", w.GetOrder, m...)
	router.GET(baseURL+"/api/v1/submissions", w.ListSubmissions, m...)
	router.GET(baseURL+"/api/v1/quizzes/:quizId/leaderboard", w.GetLeaderboard, m...)
}
