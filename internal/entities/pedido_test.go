package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivarFlujo(t *testing.T) {
	casos := []struct {
		nombre   string
		compras  EstadoAprobacion
		gerencia EstadoAprobacion
		esperado EstadoFlujo
	}{
		{
			nombre:   "ambos pendientes espera compras",
			compras:  EstadoPendiente,
			gerencia: EstadoPendiente,
			esperado: EstadoFlujo{Fase: FaseEsperandoCompras},
		},
		{
			nombre:   "compras aprobado espera gerencia",
			compras:  EstadoAprobado,
			gerencia: EstadoPendiente,
			esperado: EstadoFlujo{Fase: FaseEsperandoGerencia},
		},
		{
			nombre:   "ambos aprobados completa el flujo",
			compras:  EstadoAprobado,
			gerencia: EstadoAprobado,
			esperado: EstadoFlujo{Fase: FaseCompletado},
		},
		{
			nombre:   "rechazo en compras identifica la etapa",
			compras:  EstadoRechazado,
			gerencia: EstadoPendiente,
			esperado: EstadoFlujo{Fase: FaseRechazado, EtapaRechazo: EtapaCompras},
		},
		{
			nombre:   "rechazo en gerencia identifica la etapa",
			compras:  EstadoAprobado,
			gerencia: EstadoRechazado,
			esperado: EstadoFlujo{Fase: FaseRechazado, EtapaRechazo: EtapaGerencia},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, DerivarFlujo(c.compras, c.gerencia))
		})
	}
}

func TestEtapaActiva(t *testing.T) {
	etapa, ok := EstadoFlujo{Fase: FaseEsperandoCompras}.EtapaActiva()
	assert.True(t, ok)
	assert.Equal(t, EtapaCompras, etapa)

	etapa, ok = EstadoFlujo{Fase: FaseEsperandoGerencia}.EtapaActiva()
	assert.True(t, ok)
	assert.Equal(t, EtapaGerencia, etapa)

	_, ok = EstadoFlujo{Fase: FaseCompletado}.EtapaActiva()
	assert.False(t, ok)

	_, ok = EstadoFlujo{Fase: FaseRechazado, EtapaRechazo: EtapaCompras}.EtapaActiva()
	assert.False(t, ok)
}

func TestPuedeMarcarItems(t *testing.T) {
	pendiente := &Pedido{EstadoCompras: EstadoPendiente}
	assert.False(t, pendiente.PuedeMarcarItems())

	rechazado := &Pedido{EstadoCompras: EstadoRechazado}
	assert.False(t, rechazado.PuedeMarcarItems())

	aprobado := &Pedido{EstadoCompras: EstadoAprobado, EstadoGerencia: EstadoPendiente}
	assert.True(t, aprobado.PuedeMarcarItems())
}
