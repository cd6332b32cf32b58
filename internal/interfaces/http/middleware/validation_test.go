package middleware

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldName(t *testing.T) {
	type form struct {
		Title   string `form:"title" json:"name"`
		Email   string `json:"email,omitempty"`
		Hidden  string `form:"-"`
		Skipped string `json:"-"`
		Plain   string
	}
	typ := reflect.TypeOf(form{})
	name := func(field string) string {
		f, _ := typ.FieldByName(field)
		return fieldName(f)
	}

	assert.Equal(t, "title", name("Title"))
	assert.Equal(t, "email", name("Email"))
	assert.Equal(t, "", name("Hidden"))
	assert.Equal(t, "", name("Skipped"))
	assert.Equal(t, "", name("Plain"))
}
