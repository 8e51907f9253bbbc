package shell

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/app/popup"
)

// Popup - то, что обработчику нужно от открытого попапа
type Popup interface {
	Shell() popup.Shell
	ToggleTheme() (popup.Theme, error)
	SetTheme(t popup.Theme) error
}

type Handler struct {
	popup      Popup
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(p Popup, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		popup:      p,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.toggleThemeOp(), h.toggleTheme)
	huma.Register(api, h.setThemeOp(), h.setTheme)
}

func (h *Handler) get(_ context.Context, _ *struct{}) (*output, error) {
	return &output{Body: h.popup.Shell()}, nil
}

func (h *Handler) toggleTheme(_ context.Context, _ *struct{}) (*output, error) {
	if _, err := h.popup.ToggleTheme(); err != nil {
		h.log.Error("failed to toggle theme", "error", err)
		return nil, huma.Error500InternalServerError("theme was not saved")
	}
	return &output{Body: h.popup.Shell()}, nil
}

func (h *Handler) setTheme(_ context.Context, input *themeInput) (*output, error) {
	if err := h.popup.SetTheme(input.Body.Theme); err != nil {
		h.log.Error("failed to set theme", "theme", input.Body.Theme, "error", err)
		return nil, huma.Error500InternalServerError("theme was not saved")
	}
	return &output{Body: h.popup.Shell()}, nil
}
