package brake

import (
	"errors"
	"fmt"
	"strconv"
)

// This file contains (un)marshallers for the enum types used in brake,
// allowing config files and front-ends to use names instead of numbers.

// enumIndex looks str up in a stringer name table, it falls back to plain integers.
func enumIndex(typ, names string, index []uint8, str string) (int, error) {
	for i := 0; i < len(index)-1; i++ {
		if names[index[i]:index[i+1]] == str {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(str); err == nil {
		return i, nil
	}
	return 0, fmt.Errorf("cannot unmarshal \"%s\" to %s, is it misspelled?", str, typ)
}

func quoted(b []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return []byte(strconv.Quote(string(b))), nil
}

func unquoted(typ string, data []byte) ([]byte, error) {
	n := len(data)
	if n < 2 || data[0] != '"' || data[n-1] != '"' {
		return nil, errors.New(typ + ".UnmarshalJSON: invalid JSON provided")
	}
	return data[1 : n-1], nil
}

// ---- type Mode int

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	i, err := enumIndex("Mode", _Mode_name, _Mode_index[:], string(b))
	if err == nil {
		*m = Mode(i)
	}
	return err
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return quoted(m.MarshalText())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	b, err := unquoted("Mode", data)
	if err != nil {
		return err
	}
	return m.UnmarshalText(b)
}

// ---- type Phase int

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	i, err := enumIndex("Phase", _Phase_name, _Phase_index[:], string(b))
	if err == nil {
		*p = Phase(i)
	}
	return err
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return quoted(p.MarshalText())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	b, err := unquoted("Phase", data)
	if err != nil {
		return err
	}
	return p.UnmarshalText(b)
}

// ---- type State int

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	i, err := enumIndex("State", _State_name, _State_index[:], string(b))
	if err == nil {
		*s = State(i)
	}
	return err
}

func (s State) MarshalJSON() ([]byte, error) {
	return quoted(s.MarshalText())
}

func (s *State) UnmarshalJSON(data []byte) error {
	b, err := unquoted("State", data)
	if err != nil {
		return err
	}
	return s.UnmarshalText(b)
}
