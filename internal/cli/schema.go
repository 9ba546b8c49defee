package cli

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"

	"github.com/cicd-demo/calcd/internal/server"
)

// SchemaOutput holds the JSON schemas of the HTTP envelopes
type SchemaOutput struct {
	Request  *jsonschema.Schema `json:"request"`
	Response *jsonschema.Schema `json:"response"`
	Home     *jsonschema.Schema `json:"home"`
	Health   *jsonschema.Schema `json:"health"`
}

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output JSON schemas for the HTTP API",
	Long:  `Output JSON schemas for the request and response envelopes served by calcd.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := NewSchema()
		if err != nil {
			return fmt.Errorf("failed to generate schema: %w", err)
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// newReflector returns a reflector that names definitions in snake case
func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
}

// NewSchema reflects the API envelopes into JSON schemas
func NewSchema() (*SchemaOutput, error) {
	r := newReflector()

	out := &SchemaOutput{
		Request:  r.Reflect(&server.CalculationRequest{}),
		Response: r.Reflect(&server.CalculationResponse{}),
		Home:     r.Reflect(&server.HomeResponse{}),
		Health:   r.Reflect(&server.HealthResponse{}),
	}

	for _, s := range []*jsonschema.Schema{out.Request, out.Response, out.Home, out.Health} {
		if s == nil {
			return nil, fmt.Errorf("reflection produced an empty schema")
		}
	}
	out.Request.Description = "Body of POST /calculate. Operands default to 0 and accept numeric strings."
	out.Response.Description = "Envelope returned by POST /calculate."

	return out, nil
}
