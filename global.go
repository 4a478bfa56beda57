package pipelinellm

import (
	"github.com/rs/zerolog"
)

var (
	Logger zerolog.Logger
)
