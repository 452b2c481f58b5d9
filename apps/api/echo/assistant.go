package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lakouedu/lakou/core/assistant"
)

type assistantApi struct {
	svc      *assistant.Service
	validate *validator.Validate
}

func registerAssistantAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assistant.Service, validate *validator.Validate) {
	api := assistantApi{
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/assistant", jwt)
	ag.POST("/chat", api.chat)
}

func (api *assistantApi) chat(ctx echo.Context) error {
	var data assistant.ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	ctx.Set(contextLangKey, data.Language)

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	resp, err := api.svc.Chat(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		if _, ok := errors.Cause(err).(*assistant.FeatureDisabledError); ok {
			return err // mapped to 403 by the error handler
		}
		return errors.Wrap(err, "assistant chat")
	}
	ctx.Set(contextLangKey, resp.Language)

	return ctx.JSON(http.StatusOK, resp)
}
