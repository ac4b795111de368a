// Package advisor consultor textil conversacional sobre un modelo generativo externo.
package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/finovex-pos/internal/application/dto"
	"github.com/jhoicas/finovex-pos/internal/application/ports"
	"github.com/jhoicas/finovex-pos/internal/domain/entity"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

// Textos fijos de contingencia.
const (
	FallbackUnavailable = "I am currently having trouble connecting to the textile database. Please try again later."
	FallbackEmpty       = "I apologize, I couldn't generate a response at this moment."
)

// DefaultTimeout tiempo máximo por consulta al modelo.
const DefaultTimeout = 15 * time.Second

// UseCase orquesta la consulta al LLM. Nunca propaga fallos del colaborador externo:
// los reemplaza por el texto de contingencia.
type UseCase struct {
	llm     ports.LLMService
	timeout time.Duration
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. llm puede ser nil (asistente deshabilitado):
// en ese caso toda consulta responde con el texto de contingencia.
func NewUseCase(llm ports.LLMService, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{llm: llm, timeout: DefaultTimeout, log: log.Component("advisor")}
}

// Ask valida la consulta y delega en el LLM con un timeout de 15 s.
func (uc *UseCase) Ask(ctx context.Context, query string) (*dto.AdviceResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &entity.ValidationError{Field: "query", Reason: "es requerido"}
	}
	if uc.llm == nil {
		return &dto.AdviceResponse{Answer: FallbackUnavailable, Fallback: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.GenerateAdvice(ctx, query)
	if err != nil {
		uc.log.Warn().Err(err).Msg("consulta al LLM fallida")
		return &dto.AdviceResponse{Answer: FallbackUnavailable, Fallback: true}, nil
	}
	if strings.TrimSpace(text) == "" {
		return &dto.AdviceResponse{Answer: FallbackEmpty}, nil
	}
	return &dto.AdviceResponse{Answer: text}, nil
}
