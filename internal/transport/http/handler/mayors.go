package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/app"
	"recordhub/internal/model"
	"recordhub/internal/presenter"
)

func NewMayorHandler(svc *app.MayorService, timeout time.Duration, log *zap.Logger) *ResourceHandler[model.Mayor] {
	return &ResourceHandler[model.Mayor]{
		service: func(*gin.Context) ResourceService[model.Mayor] { return svc },
		options: func(*gin.Context) presenter.Options[model.Mayor] { return presenter.MayorOptions(timeout) },
		timeout: timeout,
		log:     log,
	}
}
