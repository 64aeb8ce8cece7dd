package model

import "fmt"

func marshalEnum(s string) ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

// unmarshalEnum unquotes data and passes the value to mapValue, which reports if the value is known.
func unmarshalEnum(data []byte, name string, mapValue func(string) bool) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		if mapValue(s) {
			return nil
		}
	}
	return fmt.Errorf("invalid %s data %s", name, s)
}
