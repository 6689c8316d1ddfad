package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleBasedCompleter(t *testing.T) {
	sophia := RuleBasedCompleter{Agent: "SOPHIA"}
	res, err := sophia.Complete(context.Background(), "block the host", "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "Caso clasificado como AUTOMATED. Creando ticket para aprobacion.", res.Text)
	assert.Equal(t, "thread-1", res.ThreadID)

	res, err = sophia.Complete(context.Background(), "ayuda por favor", "")
	require.NoError(t, err)
	assert.Equal(t, "Caso clasificado como MANUAL. Se requiere revision humana.", res.Text)

	victor := RuleBasedCompleter{Agent: "VICTOR"}
	res, err = victor.Complete(context.Background(), "ticket 5", "")
	require.NoError(t, err)
	assert.Equal(t, "VICTOR listo para generar un plan de accion.", res.Text)
}
