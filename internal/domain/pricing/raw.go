package pricing

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Raw conserva un valor numérico tal como llegó en el JSON: string, número,
// null o cualquier otra cosa. Decodificar nunca falla; la normalización decide
// cuánto vale. Así un campo mal digitado no tumba toda la petición.
type Raw []byte

// RawOf construye un Raw a partir de un valor Go (útil en tests y mapeos).
func RawOf(v any) Raw {
	switch x := v.(type) {
	case decimal.Decimal:
		return Raw(`"` + x.String() + `"`)
	case Raw:
		return x
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return Raw(b)
}

// UnmarshalJSON guarda el token sin validar.
func (r *Raw) UnmarshalJSON(b []byte) error {
	*r = append((*r)[0:0], b...)
	return nil
}

// MarshalJSON devuelve el token original (o null si está vacío).
func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// Decimal interpreta el token. ok es false si no es numérico.
func (r Raw) Decimal() (decimal.Decimal, bool) {
	b := bytes.TrimSpace(r)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return decimal.Zero, false
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero, false
		}
		return parseString(s)
	}
	return parseString(string(b))
}

// IsSet indica si el campo vino en el cuerpo con un valor distinto de null.
func (r Raw) IsSet() bool {
	b := bytes.TrimSpace(r)
	return len(b) > 0 && !bytes.Equal(b, []byte("null"))
}
