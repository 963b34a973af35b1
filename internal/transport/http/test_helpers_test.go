package http

import "github.com/rs/zerolog"

func newTestLogger() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}
