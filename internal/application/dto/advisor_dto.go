package dto

// AdviceRequest body de POST /api/assistant/ask.
type AdviceRequest struct {
	Query string `json:"query"`
}

// AdviceResponse respuesta del consultor. Fallback=true cuando el colaborador externo falló
// y el texto es el mensaje fijo de contingencia.
type AdviceResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}
