package aggregate

import (
	"encoding/json"
	"math"
)

// PilotStatus is the roster state of a squadron member.
type PilotStatus int

const (
	StatusActive PilotStatus = iota
	StatusKIA
	StatusWIA
	StatusPOW
	StatusMIA
	StatusUnknown
)

var statusLabels = map[PilotStatus]string{
	StatusActive:  "Ativo",
	StatusKIA:     "Morto em Combate (KIA)",
	StatusWIA:     "Gravemente Ferido (WIA)",
	StatusPOW:     "Capturado (POW)",
	StatusMIA:     "Desaparecido em Combate (MIA)",
	StatusUnknown: "Desconhecido",
}

// StatusFromCode maps a pilotActiveStatus code. Codes 0 and 1 are both
// active; anything unrecognized is StatusUnknown.
func StatusFromCode(code int) PilotStatus {
	switch code {
	case 0, 1:
		return StatusActive
	case 2:
		return StatusKIA
	case 3:
		return StatusWIA
	case 4:
		return StatusPOW
	case 5:
		return StatusMIA
	default:
		return StatusUnknown
	}
}

// Label returns the display label of s.
func (s PilotStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusUnknown]
}

func (s PilotStatus) String() string {
	return s.Label()
}

func (s PilotStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

func (s *PilotStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s = StatusUnknown
	for status, l := range statusLabels {
		if l == label {
			*s = status
			break
		}
	}
	return nil
}

// PilotStatusLabel returns the display label for a raw status code.
func PilotStatusLabel(code int) string {
	return StatusFromCode(code).Label()
}

// ParseStatusCode reads a pilotActiveStatus value. Only JSON numbers with an
// integral value are codes; strings, null and anything else yield -1.
func ParseStatusCode(v any) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return -1
		}
		return int(f)
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return -1
		}
		return int(t)
	case int:
		return t
	default:
		return -1
	}
}
