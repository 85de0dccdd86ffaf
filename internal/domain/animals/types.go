package animals

// Especie define as espécies aceitas.
// @Enum CAO, GATO, OUTRO
type Especie string

const (
	EspecieCao   Especie = "CAO"
	EspecieGato  Especie = "GATO"
	EspecieOutro Especie = "OUTRO"
)

func ValidEspecie(e Especie) bool {
	switch e {
	case EspecieCao, EspecieGato, EspecieOutro:
		return true
	default:
		return false
	}
}

// Porte define o tamanho do animal.
// @Enum PEQUENO, MEDIO, GRANDE
type Porte string

const (
	PortePequeno Porte = "PEQUENO"
	PorteMedio   Porte = "MEDIO"
	PorteGrande  Porte = "GRANDE"
)

func ValidPorte(p Porte) bool {
	switch p {
	case PortePequeno, PorteMedio, PorteGrande:
		return true
	default:
		return false
	}
}

// Status de disponibilidade. Só muda via aprovação de solicitação
// (ver domain/solicitacoes); nenhum PATCH altera status diretamente.
// @Enum DISPONIVEL, ADOTADO, APADRINHADO, INDISPONIVEL
type Status string

const (
	StatusDisponivel   Status = "DISPONIVEL"
	StatusAdotado      Status = "ADOTADO"
	StatusApadrinhado  Status = "APADRINHADO"
	StatusIndisponivel Status = "INDISPONIVEL"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDisponivel, StatusAdotado, StatusApadrinhado, StatusIndisponivel:
		return true
	default:
		return false
	}
}

// Limites de idade (anos) aceitos no cadastro.
const (
	IdadeMin = 0
	IdadeMax = 30
)
