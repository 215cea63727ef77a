package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	id := jwt.Identity{UserID: "u1", CompanyID: "c1", Role: "ventas"}
	tok, err := jwt.Generate("secreto", "cotizador", id, 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", "cotizador", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := jwt.Generate("secreto", "cotizador", jwt.Identity{UserID: "u1"}, 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", "cotizador", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = jwt.Parse("secreto", "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := jwt.Generate("secreto", "cotizador", jwt.Identity{UserID: "u1"}, -5)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", "cotizador", expired)
	assert.Error(t, err, "token vencido")

	_, err = jwt.Generate("", "cotizador", jwt.Identity{}, 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
