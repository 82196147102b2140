package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gestion-system/pkg/types"
)

func TestParseItemsFormConservaElOrden(t *testing.T) {
	values := map[string][]string{
		"items[0][nombre]":      {"Resma de papel"},
		"items[0][cantidad]":    {"2"},
		"items[0][unidad]":      {"Paquete"},
		"items[1][nombre]":      {"Tóner"},
		"items[1][cantidad]":    {"1"},
		"items[1][unidad]":      {"Unidad"},
		"items[1][referencia]":  {"HP 85A"},
		"items[2][nombre]":      {"Acetaminofén"},
		"items[2][cantidad]":    {"10"},
		"items[2][unidad]":      {"Unidad"},
		"items[2][producto_id]": {"7"},
	}

	items, err := parseItemsForm(values)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Resma de papel", items[0].Nombre)
	assert.Equal(t, "Tóner", items[1].Nombre)
	require.NotNil(t, items[1].Referencia)
	assert.Equal(t, "HP 85A", *items[1].Referencia)
	require.NotNil(t, items[2].ProductoID)
	assert.Equal(t, uint64(7), *items[2].ProductoID)
}

func TestParseItemsFormCortaEnElPrimerHueco(t *testing.T) {
	values := map[string][]string{
		"items[0][nombre]":   {"Resma de papel"},
		"items[0][cantidad]": {"2"},
		"items[0][unidad]":   {"Paquete"},
		// el índice 1 falta: el 2 no debe leerse
		"items[2][nombre]":   {"Tóner"},
		"items[2][cantidad]": {"1"},
		"items[2][unidad]":   {"Unidad"},
	}

	items, err := parseItemsForm(values)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Resma de papel", items[0].Nombre)
}

func TestParseItemsFormCantidadInvalida(t *testing.T) {
	values := map[string][]string{
		"items[0][nombre]":   {"Resma de papel"},
		"items[0][cantidad]": {"dos"},
		"items[0][unidad]":   {"Paquete"},
	}

	_, err := parseItemsForm(values)

	assert.ErrorContains(t, err, "item 1")
}

func TestParseItemsFormVacio(t *testing.T) {
	items, err := parseItemsForm(map[string][]string{})

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseItemsCompradosForm(t *testing.T) {
	ids, err := parseItemsCompradosForm(map[string][]string{
		"items_comprados[]": {"3", "5"},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5}, ids)
}

func TestParseItemsCompradosFormSinCorchetes(t *testing.T) {
	ids, err := parseItemsCompradosForm(map[string][]string{
		"items_comprados": {"8"},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint64{8}, ids)
}

func TestParseItemsCompradosFormInvalido(t *testing.T) {
	_, err := parseItemsCompradosForm(map[string][]string{
		"items_comprados[]": {"tres"},
	})

	assert.Error(t, err)
}

func TestParseItemsCompradosFormVacio(t *testing.T) {
	ids, err := parseItemsCompradosForm(map[string][]string{})

	require.NoError(t, err)
	assert.Empty(t, ids)
}

type fakeExportService struct {
	filtroRecibido types.Filter
}

func (s *fakeExportService) ExportarPedido(ctx context.Context, id uint64) (*excelize.File, string, error) {
	return excelize.NewFile(), "pedido-1.xlsx", nil
}

func (s *fakeExportService) ExportarConsolidado(ctx context.Context, filter types.Filter) (*excelize.File, string, error) {
	s.filtroRecibido = filter
	return excelize.NewFile(), "pedidos-consolidado.xlsx", nil
}

func TestExportarConsolidadoLeeFiltrosDelCuerpo(t *testing.T) {
	form := url.Values{}
	form.Set("filter[estado_compras]", "pendiente")
	form.Set("search", "papel")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/cp-pedidos/exportar-consolidado",
		strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	export := &fakeExportService{}
	ctrl := NewPedidoController(nil, export, zap.NewNop())

	require.NoError(t, ctrl.ExportarConsolidado(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pendiente", export.filtroRecibido.Filter["estado_compras"])
	assert.Equal(t, "papel", export.filtroRecibido.Search)
}

func TestExportarConsolidadoLeeFiltrosDeLaQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost,
		"/cp-pedidos/exportar-consolidado?filter[mes]=2026-08", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	export := &fakeExportService{}
	ctrl := NewPedidoController(nil, export, zap.NewNop())

	require.NoError(t, ctrl.ExportarConsolidado(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-08", export.filtroRecibido.Filter["mes"])
}
