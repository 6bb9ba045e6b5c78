package api

import (
	"time"
)

type Configuration struct {
	Env            string
	Port           string
	AppHost        string
	DefaultTimeout time.Duration
}
