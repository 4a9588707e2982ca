package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase words", input: "some studio", want: "Some Studio"},
		{name: "already capitalized", input: "Some Studio", want: "Some Studio"},
		{name: "all caps lowered", input: "SOME STUDIO", want: "Some Studio"},
		{name: "single word", input: "tag", want: "Tag"},
		{name: "empty string", input: "", want: ""},
		{name: "double space preserved", input: "a  b", want: "A  B"},
		{name: "unicode first letter", input: "école du soir", want: "École Du Soir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.input))
		})
	}
}

func TestURLOrigin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "path stripped", input: "https://sitea.example/scenes/42", want: "https://sitea.example"},
		{name: "query stripped", input: "https://sitea.example/x?page=2", want: "https://sitea.example"},
		{name: "port kept", input: "http://localhost:9999/graphql", want: "http://localhost:9999"},
		{name: "bare origin", input: "https://sitea.example", want: "https://sitea.example"},
		{name: "no host", input: "not a url", want: ""},
		{name: "relative path", input: "/scenes/42", want: ""},
		{name: "empty string", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLOrigin(tt.input))
		})
	}
}
