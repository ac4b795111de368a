package ports

import "context"

// LLMService puerto de salida hacia el modelo generativo del consultor textil.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// GenerateAdvice envía la consulta del cliente y devuelve el texto del modelo.
	// Un texto vacío sin error significa que el modelo no produjo respuesta.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateAdvice(ctx context.Context, query string) (string, error)
}
