package solicitacoes

// Tipo do pedido: adoção transfere a guarda, apadrinhamento não.
// @Enum ADOCAO, APADRINHAMENTO
type Tipo string

const (
	TipoAdocao         Tipo = "ADOCAO"
	TipoApadrinhamento Tipo = "APADRINHAMENTO"
)

func ValidTipo(t Tipo) bool {
	switch t {
	case TipoAdocao, TipoApadrinhamento:
		return true
	default:
		return false
	}
}

// Status do ciclo de vida. PENDENTE é o único estado não-terminal;
// nenhuma transição sai de APROVADA, REJEITADA ou CANCELADA.
// @Enum PENDENTE, APROVADA, REJEITADA, CANCELADA
type Status string

const (
	StatusPendente  Status = "PENDENTE"
	StatusAprovada  Status = "APROVADA"
	StatusRejeitada Status = "REJEITADA"
	StatusCancelada Status = "CANCELADA"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPendente, StatusAprovada, StatusRejeitada, StatusCancelada:
		return true
	default:
		return false
	}
}
