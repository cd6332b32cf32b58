package portfolio

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseTechnologies splits a comma separated list, trimming items and
// dropping empty ones.
func ParseTechnologies(s string) []string {
	return splitTrim(s, ",")
}

// FormatTechnologies joins items with ", "
func FormatTechnologies(items []string) string {
	return strings.Join(items, ", ")
}

// ParseFeatures splits a newline separated list
func ParseFeatures(s string) []string {
	return splitTrim(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// FormatFeatures joins items with newlines
func FormatFeatures(items []string) string {
	return strings.Join(items, "\n")
}

func splitTrim(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CommaList is a list carried on the wire as "a, b, c". Native JSON arrays
// are accepted on decode.
type CommaList []string

// MarshalJSON implements json.Marshaler
func (l CommaList) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTechnologies(l))
}

// UnmarshalJSON implements json.Unmarshaler
func (l *CommaList) UnmarshalJSON(data []byte) error {
	*l = decodeSeparated(data, ParseTechnologies)
	return nil
}

// String returns the comma separated form
func (l CommaList) String() string { return FormatTechnologies(l) }

// LineList is a list carried on the wire as newline separated text
type LineList []string

// MarshalJSON implements json.Marshaler
func (l LineList) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatFeatures(l))
}

// UnmarshalJSON implements json.Unmarshaler
func (l *LineList) UnmarshalJSON(data []byte) error {
	*l = decodeSeparated(data, ParseFeatures)
	return nil
}

// String returns the newline separated form
func (l LineList) String() string { return FormatFeatures(l) }

func decodeSeparated(data []byte, split func(string) []string) []string {
	res := gjson.ParseBytes(bytes.TrimSpace(data))
	switch {
	case res.IsArray():
		return arrayStrings(res)
	case res.Type == gjson.String:
		return split(res.String())
	default:
		return []string{}
	}
}

// JSONList is a string list that the backend stores as a JSON encoded
// string column ("[\"a\",\"b\"]"). Anything that does not parse as an array
// decodes to an empty list.
type JSONList []string

// MarshalJSON encodes the list back into its string column form
func (l JSONList) MarshalJSON() ([]byte, error) {
	items := []string(l)
	if items == nil {
		items = []string{}
	}
	inner, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

// UnmarshalJSON implements json.Unmarshaler
func (l *JSONList) UnmarshalJSON(data []byte) error {
	res := unwrapJSONString(data)
	if !res.IsArray() {
		*l = JSONList{}
		return nil
	}
	*l = arrayStrings(res)
	return nil
}

// TechnicalSkill is one entry of a profile's technical skill list
type TechnicalSkill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// TechnicalSkills is stored like JSONList but holds {name, level} objects.
// Plain string items are accepted with level 0.
type TechnicalSkills []TechnicalSkill

// MarshalJSON encodes the list back into its string column form
func (l TechnicalSkills) MarshalJSON() ([]byte, error) {
	items := []TechnicalSkill(l)
	if items == nil {
		items = []TechnicalSkill{}
	}
	inner, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

// UnmarshalJSON implements json.Unmarshaler
func (l *TechnicalSkills) UnmarshalJSON(data []byte) error {
	out := TechnicalSkills{}
	res := unwrapJSONString(data)
	if res.IsArray() {
		res.ForEach(func(_, item gjson.Result) bool {
			switch {
			case item.IsObject():
				if name := item.Get("name").String(); name != "" {
					out = append(out, TechnicalSkill{Name: name, Level: int(item.Get("level").Int())})
				}
			case item.Type == gjson.String && item.String() != "":
				out = append(out, TechnicalSkill{Name: item.String()})
			}
			return true
		})
	}
	*l = out
	return nil
}

// unwrapJSONString returns the parsed JSON document held inside a JSON
// string, or the value itself when it is not a string.
func unwrapJSONString(data []byte) gjson.Result {
	res := gjson.ParseBytes(bytes.TrimSpace(data))
	if res.Type != gjson.String {
		return res
	}
	inner := res.String()
	if !gjson.Valid(inner) {
		return gjson.Result{}
	}
	return gjson.Parse(inner)
}

func arrayStrings(res gjson.Result) []string {
	out := []string{}
	res.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
