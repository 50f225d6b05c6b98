package scope

import (
	"fmt"
	"regexp"
	"strings"
)

// ColumnMapping nombra las columnas de tenant y tienda para una consulta
// concreta (puede incluir alias de tabla, ej: "p.tenant_id"). StoreColumn
// vacío significa que esa consulta no filtra por tienda — decisión explícita
// del call site, no un error.
type ColumnMapping struct {
	TenantColumn string // default: "tenant_id"
	StoreColumn  string // vacío = sin filtro de tienda
}

// DefaultTenantColumn columna usada cuando el mapping no nombra una.
const DefaultTenantColumn = "tenant_id"

var whereRe = regexp.MustCompile(`(?i)\bWHERE\b`)

// ApplyScope agrega los predicados de aislamiento del scope a una consulta ya
// parametrizada (placeholders posicionales $1..$n) y devuelve la consulta y la
// lista de argumentos nuevas, listas para ejecutar.
//
// Contrato:
//   - El predicado y su argumento se agregan juntos, como par atómico, después
//     de los predicados del caller; el orden de los argumentos base se preserva.
//   - Si EnforceTenant es false (principal global) no se agrega predicado de tenant.
//   - El predicado de tienda se agrega solo si el scope trae StoreID y el
//     mapping nombra una columna de tienda.
//   - Nunca muta sus entradas; mismo input produce salida byte-idéntica.
//   - Los valores jamás se interpolan en el texto SQL: viajan como parámetros.
func ApplyScope(baseSQL string, baseArgs []any, sc AccessScope, cols ColumnMapping) (string, []any) {
	args := make([]any, len(baseArgs), len(baseArgs)+2)
	copy(args, baseArgs)

	var preds []string
	if sc.EnforceTenant {
		col := cols.TenantColumn
		if col == "" {
			col = DefaultTenantColumn
		}
		preds = append(preds, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, sc.TenantID)
	}
	if sc.StoreID != "" && cols.StoreColumn != "" {
		preds = append(preds, fmt.Sprintf("%s = $%d", cols.StoreColumn, len(args)+1))
		args = append(args, sc.StoreID)
	}

	if len(preds) == 0 {
		return baseSQL, args
	}

	glue := " WHERE "
	if whereRe.MatchString(baseSQL) {
		glue = " AND "
	}
	return baseSQL + glue + strings.Join(preds, " AND "), args
}
