package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", explanationJSON, false},
		{"empty string is still a string", `{"explanation":""}`, false},
		{"missing field", `{}`, true},
		{"wrong type", `{"explanation":42}`, true},
		{"unexpected field", `{"explanation":"x","emoji":"🍬"}`, true},
		{"malformed", `{not json}`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(explanationSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should accept any content, got %v", err)
	}
}

func TestValidateResponse_SchemaCached(t *testing.T) {
	s := explanationSchema()
	if err := validateResponse(s, json.RawMessage(explanationJSON)); err != nil {
		t.Fatal(err)
	}
	if _, ok := compiledSchemas.Load(s); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}

func TestValidateResponse_SameNameSchemasStayApart(t *testing.T) {
	strict := explanationSchema()
	loose := &Schema{
		Name:       strict.Name,
		Definition: map[string]any{"type": "object"},
	}
	extra := json.RawMessage(`{"explanation":"x","emoji":"🍬"}`)

	if err := validateResponse(strict, extra); err == nil {
		t.Fatal("strict schema accepted an unexpected field")
	}
	if err := validateResponse(loose, extra); err != nil {
		t.Fatalf("loose schema rejected %s: %v", extra, err)
	}
}
