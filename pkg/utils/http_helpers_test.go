package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "gestion-system/pkg/errors"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(10, 0))
	assert.Equal(t, 0, TotalPages(0, 30))
	assert.Equal(t, 1, TotalPages(30, 30))
	assert.Equal(t, 2, TotalPages(31, 30))
	// 32 pedidos a 30 por página caben en 2 páginas.
	assert.Equal(t, 2, TotalPages(32, 30))
	assert.Equal(t, 4, TotalPages(100, 30))
}

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Sort)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQueryCompleto(t *testing.T) {
	values, err := url.ParseQuery(
		"search=papeleria&sort[created_at]=desc&filter[estado_compras]=pendiente&limit=50&page=2")
	assert.NoError(t, err)

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "papeleria", filter.Search)
	assert.Equal(t, map[string]string{"created_at": "desc"}, filter.Sort)
	assert.Equal(t, "pendiente", filter.Filter["estado_compras"])
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 2, filter.Page)
	// Sin offset explícito se deriva de la página.
	assert.Equal(t, 50, filter.Offset)
}

func TestParseFilterFromQueryLimites(t *testing.T) {
	values, _ := url.ParseQuery("limit=9999&page=-3&sort[campo]=sideways&withPagination=false")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, MaxLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.False(t, filter.WithPagination)
	// Una dirección de orden desconocida se descarta.
	assert.Empty(t, filter.Sort)
}

func TestParseFilterFromQueryValoresMultiples(t *testing.T) {
	values, _ := url.ParseQuery("filter[estado_compras]=pendiente&filter[estado_compras]=aprobado")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "pendiente,aprobado", filter.Filter["estado_compras"])
}

func responderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, ErrorResponse(c, err, zap.NewNop()))
	return rec
}

func TestErrorResponseMapeaSentinelas(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, responderError(t, apperrors.ErrNotFound).Code)
	assert.Equal(t, http.StatusConflict, responderError(t, apperrors.ErrConflict).Code)
	assert.Equal(t, http.StatusUnauthorized, responderError(t, apperrors.ErrInvalidCredentials).Code)
	assert.Equal(t, http.StatusForbidden, responderError(t, apperrors.ErrForbidden).Code)
}

func TestErrorResponseHttpError(t *testing.T) {
	rec := responderError(t, apperrors.NewBadRequestError("La firma es obligatoria"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "La firma es obligatoria")
	assert.Contains(t, rec.Body.String(), `"status":false`)
}
