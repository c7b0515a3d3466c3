package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"FrontendMessage", "frontend_message"},
		{"HTTPSConnection", "https_connection"},
		{"userID", "user_id"},
		{"Game.Protocol", "game_protocol"},
		{"already_snake", "already_snake"},
		{"kebab-case", "kebab_case"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToSnakeCase(tt.in), tt.in)
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"game.protocol", "GameProtocol"},
		{"Game.Protocol", "GameProtocol"},
		{"button_state", "ButtonState"},
		{"ButtonState", "ButtonState"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPascalCase(tt.in), tt.in)
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "buttonState", ToCamelCase("ButtonState"))
	assert.Equal(t, "idle", ToCamelCase("Idle"))
	assert.Equal(t, "frontendMessage", ToCamelCase("frontend_message"))
	assert.Equal(t, "", LowerFirst(""))
}
