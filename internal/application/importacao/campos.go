// Package importacao implementa o upload de bases de devedores: mapeamento de colunas,
// preview com validação linha a linha e importação transacional.
package importacao

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

// Field coluna aceita no arquivo de base.
type Field struct {
	Nome         string
	Descricao    string
	Tipo         string
	Exemplo      string
	Alternativas []string
}

// RequiredFields colunas obrigatórias, na ordem de checagem.
var RequiredFields = []Field{
	{"cpf", "CPF do devedor (somente números ou com formatação)", "texto", "123.456.789-00",
		[]string{"cpf", "cpf_cnpj", "documento", "doc"}},
	{"nome", "Nome completo do devedor", "texto", "João da Silva",
		[]string{"nome", "name", "cliente", "devedor", "nome_cliente"}},
	{"valor", "Valor da dívida", "numérico", "1500.00",
		[]string{"valor", "valor_original", "value", "divida", "valor_divida", "valor_devido"}},
	{"vencimento", "Data de vencimento da dívida", "data", "2024-12-31",
		[]string{"vencimento", "data_vencimento", "dt_vencimento", "due_date", "data_vcto"}},
}

// OptionalFields colunas opcionais.
var OptionalFields = []Field{
	{"data_nascimento", "Data de nascimento do devedor", "data", "1985-05-15",
		[]string{"data_nascimento", "nascimento", "dt_nascimento", "birth_date", "dt_nasc"}},
	{"sexo", "Sexo (M/F)", "texto", "M",
		[]string{"sexo", "genero", "gender", "sex"}},
	{"telefone", "Telefone de contato", "texto", "(11) 99999-8888",
		[]string{"telefone", "tel", "phone", "celular", "fone", "contato"}},
	{"email", "E-mail do devedor", "texto", "joao@email.com",
		[]string{"email", "e-mail", "mail"}},
	{"numero_contrato", "Número do contrato", "texto", "CTR-2024-001",
		[]string{"numero_contrato", "contrato", "num_contrato", "contract", "nro_contrato"}},
	{"status", "Status do contrato (ativo, atrasado, pago)", "texto", "ativo",
		[]string{"status", "situacao", "status_contrato"}},
	{"data_contrato", "Data de emissão do contrato", "data", "2024-01-15",
		[]string{"data_contrato", "dt_contrato", "data_emissao"}},
	{"endereco", "Endereço completo", "texto", "Rua das Flores, 123",
		[]string{"endereco", "address", "logradouro", "rua"}},
	{"cidade", "Cidade", "texto", "São Paulo",
		[]string{"cidade", "city", "municipio"}},
	{"estado", "Estado (UF)", "texto", "SP",
		[]string{"estado", "uf", "state"}},
	{"cep", "CEP", "texto", "01234-567",
		[]string{"cep", "zip", "postal_code"}},
}

// Estrutura devolve a descrição dos campos para GET /base/campos.
func Estrutura() dto.EstruturaCampos {
	return dto.EstruturaCampos{
		Obrigatorios: toCampos(RequiredFields),
		Opcionais:    toCampos(OptionalFields),
	}
}

func toCampos(fields []Field) []dto.Campo {
	out := make([]dto.Campo, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.Campo{
			Nome:         f.Nome,
			Descricao:    f.Descricao,
			Tipo:         f.Tipo,
			Exemplo:      f.Exemplo,
			Alternativas: append([]string(nil), f.Alternativas...),
		})
	}
	return out
}

// NormalizeHeader deixa o cabeçalho comparável: minúsculas, sem acentos, espaços viram "_".
// "Data de Vencimento " -> "data_de_vencimento", "Situação" -> "situacao".
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// ColumnMap liga cada campo reconhecido ao índice da coluna no arquivo.
type ColumnMap struct {
	index   map[string]int
	headers map[string]string
}

// MapColumns encontra as colunas do arquivo. Falta de coluna obrigatória é erro de entrada.
func MapColumns(headers []string) (*ColumnMap, error) {
	normalized := make(map[string]int, len(headers))
	for i, h := range headers {
		n := NormalizeHeader(h)
		if _, dup := normalized[n]; !dup {
			normalized[n] = i
		}
	}
	m := &ColumnMap{index: map[string]int{}, headers: map[string]string{}}
	find := func(f Field) bool {
		for _, alt := range f.Alternativas {
			if i, ok := normalized[NormalizeHeader(alt)]; ok {
				m.index[f.Nome] = i
				m.headers[f.Nome] = headers[i]
				return true
			}
		}
		return false
	}
	for _, f := range RequiredFields {
		if !find(f) {
			return nil, domain.Errorf(domain.ErrInvalidInput,
				"Coluna obrigatória não encontrada: %s. Possíveis nomes: %s", f.Nome, formatAlternatives(f.Alternativas))
		}
	}
	for _, f := range OptionalFields {
		find(f)
	}
	return m, nil
}

// Has informa se o campo foi mapeado.
func (m *ColumnMap) Has(field string) bool {
	_, ok := m.index[field]
	return ok
}

// Value devolve a célula do campo na linha, sem espaços nas pontas; vazio se não mapeado.
func (m *ColumnMap) Value(row []string, field string) string {
	i, ok := m.index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Headers devolve campo -> cabeçalho original.
func (m *ColumnMap) Headers() map[string]string {
	out := make(map[string]string, len(m.headers))
	for k, v := range m.headers {
		out[k] = v
	}
	return out
}

func formatAlternatives(alts []string) string {
	quoted := make([]string, len(alts))
	for i, a := range alts {
		quoted[i] = fmt.Sprintf("'%s'", a)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
