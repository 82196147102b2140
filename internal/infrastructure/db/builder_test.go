package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"

	"gestion-system/pkg/types"
)

var pedidoMap = map[string]string{
	"estado_compras": "p.estado_compras",
	"created_at":     "p.created_at",
}

func baseBuilder() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("p.id").From("cp_pedidos p")
}

func TestApplyListParamsSinFiltroEsIdentidad(t *testing.T) {
	esperado, _, err := baseBuilder().ToSql()
	assert.NoError(t, err)

	obtenido, args, err := ApplyListParams(baseBuilder(), types.Filter{}, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.Equal(t, esperado, obtenido)
	assert.Empty(t, args)
}

func TestApplyListParamsFiltroYOrden(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"estado_compras": "pendiente"},
		Sort:   map[string]string{"created_at": "desc"},
	}

	sql, args, err := ApplyListParams(baseBuilder(), filter, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "p.estado_compras = $1")
	assert.Contains(t, sql, "ORDER BY p.created_at DESC")
	assert.Equal(t, []interface{}{"pendiente"}, args)
}

func TestApplyListParamsValoresMultiples(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"estado_compras": "pendiente,aprobado"},
	}

	sql, args, err := ApplyListParams(baseBuilder(), filter, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "p.estado_compras IN ($1,$2)")
	assert.Equal(t, []interface{}{"pendiente", "aprobado"}, args)
}

func TestApplyListParamsIgnoraCamposDesconocidos(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"password": "x"},
		Sort:   map[string]string{"password": "asc"},
	}

	esperado, _, _ := baseBuilder().ToSql()
	obtenido, args, err := ApplyListParams(baseBuilder(), filter, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.Equal(t, esperado, obtenido)
	assert.Empty(t, args)
}

func TestApplyListParamsPaginacion(t *testing.T) {
	filter := types.Filter{WithPagination: true, Limit: 30, Offset: 30}

	sql, _, err := ApplyListParams(baseBuilder(), filter, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 30")
	assert.Contains(t, sql, "OFFSET 30")

	// Sin paginación explícita el listado vuelve completo.
	sinPaginar, _, err := ApplyListParams(baseBuilder(), types.Filter{Limit: 30, Offset: 30}, pedidoMap).ToSql()
	assert.NoError(t, err)
	assert.NotContains(t, sinPaginar, "LIMIT")
}
