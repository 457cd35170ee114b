package web

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// inputSchemas are the JSON schemas of the write payloads, generated from the Go structs.
var inputSchemas = map[string]*jsonschema.Schema{
	"document":       generateSchema(&core.DocumentInput{}),
	"client":         generateSchema(&core.ClientInput{}),
	"product":        generateSchema(&core.ProductInput{}),
	"sustainability": generateSchema(&core.SustainabilityInput{}),
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func generateSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			// Amounts are accepted as JSON numbers or decimal strings.
			if t == decimalType {
				return &jsonschema.Schema{OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "number"}}}
			}
			return nil
		},
	}
	return reflector.Reflect(v)
}

// apiSchema handles GET /api/schema/{entity}.
func (h *Handler) apiSchema(w http.ResponseWriter, r *http.Request) {
	schema, ok := inputSchemas[chi.URLParam(r, "entity")]
	if !ok {
		writeError(w, r, "unknown schema entity", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, schema)
}
