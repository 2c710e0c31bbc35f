package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Upstream adres servisinin döndürdüğü alan adları
const (
	AlanAdres     = "adres"
	AlanIl        = "il"
	AlanIlce      = "ilce"
	AlanMahalle   = "mahalle"
	AlanCadde     = "cadde"
	AlanSokak     = "sokak"
	AlanBinaNo    = "binaNo"
	AlanDaireNo   = "daireNo"
	AlanPostaKodu = "postaKodu"

	KeyError  = "error"
	KeyCode   = "code"
	KeyStatus = "status"
	KeyUsage  = "usage"

	StatusSuccess = "success"
)

// AdresAlanlari is the ordered list of address fields copied from upstream.
var AdresAlanlari = []string{
	AlanAdres, AlanIl, AlanIlce, AlanMahalle, AlanCadde,
	AlanSokak, AlanBinaNo, AlanDaireNo, AlanPostaKodu,
}

// UpstreamResponse is the loosely typed JSON object returned by the address API.
// Numbers are kept as json.Number so they are echoed back verbatim.
type UpstreamResponse map[string]any

// HasError reports whether upstream (or the client) attached a truthy error marker.
func (u UpstreamResponse) HasError() bool {
	return Truthy(u[KeyError])
}

// Response is the JSON body handed back to the caller: either a cleaned
// address record or an error payload.
type Response map[string]any

// SplitCode removes the "code" key and returns it as the HTTP status.
// A missing or unusable code means 200.
func (r Response) SplitCode() (Response, int) {
	v, ok := r[KeyCode]
	if !ok {
		return r, 200
	}
	out := make(Response, len(r))
	for k, val := range r {
		if k != KeyCode {
			out[k] = val
		}
	}
	return out, statusFrom(v)
}

func statusFrom(v any) int {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case float64:
		n = int(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 200
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 200
		}
		n = i
	default:
		return 200
	}
	if n < 100 || n > 599 {
		return 200
	}
	return n
}

// Truthy mirrors the loose "present and non-empty" check used on upstream values:
// nil, "", false, zero numbers and empty collections are all treated as absent.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
