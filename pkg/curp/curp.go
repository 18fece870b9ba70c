// Package curp valida la Clave Única de Registro de Población (México).
package curp

import (
	"fmt"
	"regexp"
	"strings"
)

// Length longitud fija de una CURP.
const Length = 18

// diccionario RENAPO para el dígito verificador; la posición de cada carácter es su valor.
var checkDictionary = []rune("0123456789ABCDEFGHIJKLMNÑOPQRSTUVWXYZ")

var (
	basicPattern  = regexp.MustCompile(`^[A-Z0-9]{18}$`)
	strictPattern = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])[HMX]` +
		`(AS|BC|BS|CC|CL|CM|CS|CH|DF|DG|GT|GR|HG|JC|MC|MN|MS|NT|NL|OC|PL|QT|QR|SP|SL|SR|TC|TS|TL|VZ|YN|ZS|NE)` +
		`[B-DF-HJ-NP-TV-Z]{3}[0-9A-Z]\d$`)
)

// Normalize quita espacios y convierte a mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate exige 18 caracteres alfanuméricos en mayúsculas.
func Validate(c string) error {
	if len(c) != Length {
		return fmt.Errorf("curp: debe tener %d caracteres, se recibieron %d", Length, len(c))
	}
	if !basicPattern.MatchString(c) {
		return fmt.Errorf("curp: solo se permiten letras mayúsculas y dígitos")
	}
	return nil
}

// ValidateStrict además de Validate comprueba la estructura RENAPO
// (iniciales, fecha, sexo, entidad, consonantes) y el dígito verificador.
func ValidateStrict(c string) error {
	if err := Validate(c); err != nil {
		return err
	}
	if !strictPattern.MatchString(c) {
		return fmt.Errorf("curp: estructura inválida")
	}
	expected, err := CheckDigit(c[:17])
	if err != nil {
		return err
	}
	if c[17] != expected {
		return fmt.Errorf("curp: dígito verificador inválido: esperado %c, recibido %c", expected, c[17])
	}
	return nil
}

// CheckDigit calcula el dígito verificador sobre los 17 primeros caracteres.
func CheckDigit(base string) (byte, error) {
	runes := []rune(base)
	if len(runes) != Length-1 {
		return 0, fmt.Errorf("curp: se requieren %d caracteres para calcular el dígito verificador", Length-1)
	}
	var sum int
	for i, r := range runes {
		v := indexOf(r)
		if v < 0 {
			return 0, fmt.Errorf("curp: carácter inválido %q en la posición %d", r, i+1)
		}
		sum += v * (Length - i)
	}
	return byte('0' + (10-sum%10)%10), nil
}

func indexOf(r rune) int {
	for i, d := range checkDictionary {
		if d == r {
			return i
		}
	}
	return -1
}
