package entity

import (
	"time"

	"github.com/cordobafintech/cobranca-api/pkg/documento"
)

// Sexo do cliente.
const (
	SexoMasculino = "M"
	SexoFeminino  = "F"
	SexoOutro     = "O"
)

// Cliente é um devedor de um tenant. CPF sempre no formato XXX.XXX.XXX-XX.
type Cliente struct {
	ID             int64
	TenantID       int64
	Nome           string
	CPF            string
	DataNascimento *time.Time
	Sexo           string
	Telefone       string
	Email          string
	Endereco       string
	Cidade         string
	Estado         string
	CEP            string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// CPFMascarado devolve o CPF com os seis primeiros dígitos ocultos.
func (c *Cliente) CPFMascarado() string {
	return MaskCPF(c.CPF)
}

// Idade em anos completos na data hoje; nil sem data de nascimento.
func (c *Cliente) Idade(hoje time.Time) *int {
	if c.DataNascimento == nil {
		return nil
	}
	n := *c.DataNascimento
	anos := hoje.Year() - n.Year()
	if hoje.Month() < n.Month() || (hoje.Month() == n.Month() && hoje.Day() < n.Day()) {
		anos--
	}
	return &anos
}

// MaskCPF mostra só os cinco últimos dígitos: 123.456.789-01 -> ***.***.*789-01.
func MaskCPF(cpf string) string {
	d := documento.Digits(cpf)
	if len(d) < 5 {
		return "***.***.***-**"
	}
	return "***.***.*" + d[len(d)-5:len(d)-2] + "-" + d[len(d)-2:]
}
