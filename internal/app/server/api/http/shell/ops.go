package shell

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "shell-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/shell",
		Summary:     "Оболочка попапа",
		Description: "Заголовок, ссылки, тема и подписи кнопок для текущей локали.",
		Tags:        []string{"shell"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) toggleThemeOp() huma.Operation {
	return huma.Operation{
		OperationID: "shell-theme-toggle",
		Method:      http.MethodPost,
		Path:        "/api/v1/shell/theme/toggle",
		Summary:     "Переключить тему",
		Tags:        []string{"shell"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setThemeOp() huma.Operation {
	return huma.Operation{
		OperationID: "shell-theme-set",
		Method:      http.MethodPut,
		Path:        "/api/v1/shell/theme",
		Summary:     "Установить тему",
		Tags:        []string{"shell"},
		Middlewares: h.middleware,
	}
}
