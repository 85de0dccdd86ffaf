// Package sanitize limpa texto livre vindo do usuário (descrição de animal,
// mensagem de solicitação) antes de persistir. Esses campos são renderizados
// no frontend, então HTML não passa: política estrita do bluemonday.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text remove qualquer marcação HTML e normaliza espaços nas pontas.
// Idempotente: mesma entrada, mesma saída.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
