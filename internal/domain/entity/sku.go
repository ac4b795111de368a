package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeSKU clave de comparación de SKU: sin espacios en los extremos y con case folding Unicode.
// Un cases.Caser no es seguro para uso concurrente, por eso se crea uno por llamada.
func NormalizeSKU(sku string) string {
	return cases.Fold().String(strings.TrimSpace(sku))
}

// SameSKU compara dos SKU sin distinguir mayúsculas.
func SameSKU(a, b string) bool {
	return NormalizeSKU(a) == NormalizeSKU(b)
}
