package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]map[string]any
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "Pecuadex API", spec.Info.Title)
	assert.Contains(t, spec.Paths, "/api/cotizaciones/SolicitarCotizacion")
	assert.Contains(t, spec.Paths["/api/producto/AgregarProductoConManual"], "post")
}
