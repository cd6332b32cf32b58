package view

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Field describes one input of an admin form
type Field struct {
	Name     string
	Label    string
	Input    string // text, textarea, number, checkbox, select, date, email, url
	Value    string
	Checked  bool
	Options  []string
	Required bool
	Error    string
}

// Describe lists the inputs of a bound form struct from its form, binding
// and input tags. errs holds per-field messages keyed by form name.
func Describe(form any, errs map[string]string) []Field {
	v := reflect.Indirect(reflect.ValueOf(form))
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := sf.Tag.Get("form")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		binding := sf.Tag.Get("binding")
		f := Field{
			Name:     name,
			Label:    label(sf),
			Input:    input(sf, binding),
			Required: hasRule(binding, "required"),
			Error:    errs[name],
		}
		if f.Input == "select" {
			f.Options = oneOf(binding)
		}

		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Bool:
			f.Checked = fv.Bool()
			f.Value = "true"
		case reflect.Int, reflect.Int64:
			f.Value = strconv.FormatInt(fv.Int(), 10)
		case reflect.String:
			f.Value = fv.String()
		}
		fields = append(fields, f)
	}
	return fields
}

func input(sf reflect.StructField, binding string) string {
	if in := sf.Tag.Get("input"); in != "" {
		return in
	}
	switch {
	case sf.Type.Kind() == reflect.Bool:
		return "checkbox"
	case sf.Type.Kind() == reflect.Int:
		return "number"
	case hasRule(binding, "oneof"):
		return "select"
	case hasRule(binding, "email"):
		return "email"
	case hasRule(binding, "url"):
		return "url"
	case strings.HasSuffix(sf.Name, "Date"):
		return "date"
	}
	return "text"
}

func rules(binding string) []string {
	if binding == "" {
		return nil
	}
	return strings.Split(binding, ",")
}

func hasRule(binding, rule string) bool {
	for _, r := range rules(binding) {
		if r == rule || strings.HasPrefix(r, rule+"=") {
			return true
		}
	}
	return false
}

func oneOf(binding string) []string {
	for _, r := range rules(binding) {
		if v, ok := strings.CutPrefix(r, "oneof="); ok {
			return strings.Fields(v)
		}
	}
	return nil
}

// label turns "ProfileImageURL" into "Profile Image URL"
func label(sf reflect.StructField) string {
	if l := sf.Tag.Get("label"); l != "" {
		return l
	}
	runes := []rune(sf.Name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
