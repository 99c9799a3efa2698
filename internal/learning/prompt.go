package learning

import "github.com/abhisek/mathexplorer/internal/llm"

const systemPrompt = `Eres un robot profesor de matemáticas, paciente y divertido, que habla con niños de 7 a 10 años. Respondes siempre en español.`

// topicPrompts are the per-topic instructions sent as the user message.
var topicPrompts = map[Topic]string{
	TopicAddition: "Explica la suma a un niño de 7 a 10 años de una manera divertida, simple y atractiva. " +
		"Usa una analogía con juguetes o caramelos. Proporciona un ejemplo sencillo con números. " +
		"Mantenlo corto y en español. Usa markdown con ** para resaltar palabras importantes.",
	TopicSubtraction: "Explica la resta a un niño de 7 a 10 años de una manera divertida y sencilla. " +
		"Usa una analogía con galletas que un monstruo se come. Proporciona un ejemplo claro con números. " +
		"Mantenlo corto y en español. Usa markdown con ** para resaltar palabras importantes.",
}

// ExplanationSchema is the structured reply requested from the provider.
var ExplanationSchema = &llm.Schema{
	Name:        "explanation",
	Description: "A short, child-friendly explanation of an arithmetic operation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "The explanation in Spanish, using **bold** for key words",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

// LoadingMessages rotate while an explanation is being fetched.
var LoadingMessages = []string{
	"El robot está pensando...",
	"Consultando al oráculo matemático...",
	"Calculando la respuesta...",
	"Preparando tu lección...",
}
