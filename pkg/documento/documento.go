// Package documento formata e confere CPF e CNPJ.
package documento

import (
	"errors"
	"fmt"
)

// Pesos do módulo 11 (Receita Federal). O primeiro dígito verificador usa o
// sufixo do vetor com len(base) pesos; o segundo, o vetor inteiro.
var (
	cpfWeights  = [10]int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

var (
	ErrCPFLength  = errors.New("documento: CPF deve ter 11 dígitos")
	ErrCNPJLength = errors.New("documento: CNPJ deve ter 14 dígitos")
)

// Digits devolve somente os dígitos ASCII de s.
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// FormatCPF devolve XXX.XXX.XXX-XX. Aceita entrada com ou sem pontuação.
func FormatCPF(raw string) (string, error) {
	d := Digits(raw)
	if len(d) != 11 {
		return "", ErrCPFLength
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:], nil
}

// FormatCNPJ devolve XX.XXX.XXX/XXXX-XX.
func FormatCNPJ(raw string) (string, error) {
	d := Digits(raw)
	if len(d) != 14 {
		return "", ErrCNPJLength
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:], nil
}

// CompleteCPF recebe os 9 primeiros dígitos e devolve o CPF formatado com
// os verificadores calculados.
func CompleteCPF(base string) (string, error) {
	d := Digits(base)
	if len(d) != 9 {
		return "", fmt.Errorf("documento: base do CPF deve ter 9 dígitos, recebidos %d", len(d))
	}
	d = appendCheckDigits(d, cpfWeights[:])
	return FormatCPF(d)
}

// ValidateCPF confere tamanho e dígitos verificadores.
func ValidateCPF(raw string) error {
	d := Digits(raw)
	if len(d) != 11 {
		return ErrCPFLength
	}
	if allSame(d) {
		return errors.New("documento: CPF com dígitos repetidos")
	}
	if want := appendCheckDigits(d[:9], cpfWeights[:]); want != d {
		return fmt.Errorf("documento: dígitos verificadores do CPF inválidos: esperado %s, recebido %s", want[9:], d[9:])
	}
	return nil
}

// ValidateCNPJ confere tamanho e dígitos verificadores.
func ValidateCNPJ(raw string) error {
	d := Digits(raw)
	if len(d) != 14 {
		return ErrCNPJLength
	}
	if allSame(d) {
		return errors.New("documento: CNPJ com dígitos repetidos")
	}
	if want := appendCheckDigits(d[:12], cnpjWeights[:]); want != d {
		return fmt.Errorf("documento: dígitos verificadores do CNPJ inválidos: esperado %s, recebido %s", want[12:], d[12:])
	}
	return nil
}

// appendCheckDigits calcula os dois verificadores de base e os anexa.
func appendCheckDigits(base string, weights []int) string {
	d := []byte(base)
	for range 2 {
		w := weights[len(weights)-len(d):]
		var sum int
		for i, c := range d {
			sum += int(c-'0') * w[i]
		}
		r := sum % 11
		dv := byte('0')
		if r >= 2 {
			dv = byte('0' + (11 - r))
		}
		d = append(d, dv)
	}
	return string(d)
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
