package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto, seguro para uso como id de elemento HTML
func GenerateID() string {
	return gonanoid.MustGenerate(characters, 8)
}
