package stopwatch

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "stopwatches-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/stopwatches",
		Summary:     "Список секундомеров",
		Tags:        []string{"stopwatches"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "stopwatches-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/stopwatches",
		Summary:       "Создать секундомер",
		Description:   "Создает секундомер на паузе с нулевым временем и сразу сохраняет его.",
		Tags:          []string{"stopwatches"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "stopwatches-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/stopwatches/{hash}",
		Summary:     "Получить секундомер",
		Tags:        []string{"stopwatches"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) patchOp() huma.Operation {
	return huma.Operation{
		OperationID: "stopwatches-patch",
		Method:      http.MethodPatch,
		Path:        "/api/v1/stopwatches/{hash}",
		Summary:     "Изменить имя или время",
		Description: "Время в формате hh:mm:ss. Неверный формат возвращает 422 с локализованным сообщением и показывает оповещение.",
		Tags:        []string{"stopwatches"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "stopwatches-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/stopwatches/{hash}",
		Summary:     "Удалить секундомер",
		Tags:        []string{"stopwatches"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) actionOp(action, summary string) huma.Operation {
	return huma.Operation{
		OperationID: "stopwatches-" + action,
		Method:      http.MethodPost,
		Path:        "/api/v1/stopwatches/{hash}/" + action,
		Summary:     summary,
		Tags:        []string{"stopwatches"},
		Middlewares: h.middleware,
	}
}
