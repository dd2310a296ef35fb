package llmgateway

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/appmarket/matchcore/internal/domain"
)

// jsonSchemaFormat wraps a named JSON schema for constrained chat output,
// mirroring the teacher's GenerateSchemaFrom + ChatCompletionNewParams
// wiring in common/llm/llm.go.
type jsonSchemaFormat struct {
	name   string
	schema any
}

func (f *jsonSchemaFormat) toResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   f.name,
				Schema: f.schema,
				Strict: openai.Bool(false),
			},
		},
	}
}

func reflectSchema(v any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}

func buildExtractionSchema() *jsonSchemaFormat {
	return &jsonSchemaFormat{
		name:   "requirement_delta",
		schema: reflectSchema(extractionResult{}),
	}
}

func buildCardFieldsSchema() *jsonSchemaFormat {
	return &jsonSchemaFormat{
		name:   "card_fields",
		schema: reflectSchema(cardFieldsResult{}),
	}
}

// labelCatalogSample is the representative sample of the closed label
// catalog supplied to extraction (spec.md §4.3 step 2). A real deployment
// would source this from the catalog repository; the core only needs a
// stable, illustrative sample to steer the model, since extraction output
// is free text validated by the schema rather than an enum.
var labelCatalogSample = LabelCatalogSample

// LabelCatalogSample is a representative sample of the closed label
// catalog, exported so the question synthesizer (C5) can draw its label
// examples from the same source as extraction (C3) is steered by.
var LabelCatalogSample = []string{
	"CRM", "Project Management", "Time Tracking", "Accounting", "Analytics",
	"HR", "Inventory Management", "Customer Support", "Marketing Automation",
	"E-commerce", "Point of Sale", "Document Management", "Resource Planning",
	"Scheduling", "Billing",
}

func buildExtractionSystemPrompt(prior *domain.Accumulated) string {
	var b strings.Builder
	b.WriteString("You extract a software buyer's requirements from free-form text.\n")
	b.WriteString("labels: functional categories, drawn from (or close to) this catalog sample: ")
	b.WriteString(strings.Join(labelCatalogSample, ", "))
	b.WriteString(".\n")
	b.WriteString("tags: short noun phrases describing business context (industry, company size, use case).\n")
	b.WriteString("integrations: named external services the buyer explicitly wants to connect to, Title Cased verbatim.\n")
	b.WriteString("price_max: only set when the buyer states an explicit cash ceiling; omit otherwise.\n")
	b.WriteString("Return empty arrays/omitted fields for anything not mentioned in this turn; do not repeat facts already known.\n")

	if prior != nil {
		if prior.Labels.Len() > 0 {
			fmt.Fprintf(&b, "Already known labels: %s.\n", strings.Join(prior.Labels.Values(), ", "))
		}
		if prior.Tags.Len() > 0 {
			fmt.Fprintf(&b, "Already known tags: %s.\n", strings.Join(prior.Tags.Values(), ", "))
		}
		if prior.Integrations.Len() > 0 {
			fmt.Fprintf(&b, "Already known integrations: %s.\n", strings.Join(prior.Integrations.Values(), ", "))
		}
	}

	return b.String()
}
