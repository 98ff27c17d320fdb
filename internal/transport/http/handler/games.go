package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/app"
	"recordhub/internal/model"
	"recordhub/internal/presenter"
)

func NewGameHandler(svc *app.GameService, timeout time.Duration, log *zap.Logger) *ResourceHandler[model.Game] {
	return &ResourceHandler[model.Game]{
		service: func(*gin.Context) ResourceService[model.Game] { return svc },
		options: func(*gin.Context) presenter.Options[model.Game] { return presenter.GameOptions(timeout) },
		timeout: timeout,
		log:     log,
	}
}
