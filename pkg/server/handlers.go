package server

import (
	"Agora/handler"
)

type Handlers struct {
	Topic     *handler.TopicHandler
	Recommend *handler.Recommend
	Admin     *handler.Admin
}
