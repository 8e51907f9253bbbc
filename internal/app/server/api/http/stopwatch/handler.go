package stopwatch

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"multistopwatch/internal/domain/stopwatch"
)

// Collection - то, что обработчику нужно от коллекции открытого попапа
type Collection interface {
	Views() []stopwatch.View
	RunningCount() int
	Create() (*stopwatch.Stopwatch, error)
	Get(hash string) (*stopwatch.Stopwatch, error)
	Delete(hash string) error
}

type Handler struct {
	stopwatches Collection
	log         *slog.Logger
	middleware  huma.Middlewares
}

func NewHandler(c Collection, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		stopwatches: c,
		log:         log,
		middleware:  mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.patchOp(), h.patch)
	huma.Register(api, h.deleteOp(), h.delete)

	huma.Register(api, h.actionOp("start", "Запустить"), h.action((*stopwatch.Stopwatch).Start))
	huma.Register(api, h.actionOp("pause", "Поставить на паузу"), h.action((*stopwatch.Stopwatch).Pause))
	huma.Register(api, h.actionOp("toggle", "Запустить или поставить на паузу"), h.action(toggle))
	huma.Register(api, h.actionOp("reset", "Сбросить время"), h.action((*stopwatch.Stopwatch).Reset))
}

func toggle(sw *stopwatch.Stopwatch) error {
	_, err := sw.Toggle()
	return err
}

func (h *Handler) list(_ context.Context, _ *struct{}) (*listOutput, error) {
	return &listOutput{
		Body: listResponse{
			Stopwatches: h.stopwatches.Views(),
			Running:     h.stopwatches.RunningCount(),
		},
	}, nil
}

func (h *Handler) create(_ context.Context, _ *struct{}) (*viewOutput, error) {
	sw, err := h.stopwatches.Create()
	if err != nil {
		return nil, h.fail(err)
	}
	return &viewOutput{Body: sw.View()}, nil
}

func (h *Handler) get(_ context.Context, input *hashInput) (*viewOutput, error) {
	sw, err := h.stopwatches.Get(input.Hash)
	if err != nil {
		return nil, h.fail(err)
	}
	return &viewOutput{Body: sw.View()}, nil
}

func (h *Handler) patch(_ context.Context, input *patchInput) (*viewOutput, error) {
	sw, err := h.stopwatches.Get(input.Hash)
	if err != nil {
		return nil, h.fail(err)
	}

	if input.Body.Name != nil {
		if err := sw.Rename(*input.Body.Name); err != nil {
			return nil, h.fail(err)
		}
	}
	if input.Body.Time != nil {
		if err := sw.EditTime(*input.Body.Time); err != nil {
			return nil, h.fail(err)
		}
	}
	return &viewOutput{Body: sw.View()}, nil
}

func (h *Handler) delete(_ context.Context, input *hashInput) (*deleteOutput, error) {
	if err := h.stopwatches.Delete(input.Hash); err != nil {
		return nil, h.fail(err)
	}
	return &deleteOutput{
		Body: deleteResponse{Hash: input.Hash, Status: "Ok"},
	}, nil
}

func (h *Handler) action(fn func(*stopwatch.Stopwatch) error) func(context.Context, *hashInput) (*viewOutput, error) {
	return func(_ context.Context, input *hashInput) (*viewOutput, error) {
		sw, err := h.stopwatches.Get(input.Hash)
		if err != nil {
			return nil, h.fail(err)
		}
		if err := fn(sw); err != nil {
			return nil, h.fail(err)
		}
		return &viewOutput{Body: sw.View()}, nil
	}
}

// fail переводит ошибку домена в HTTP-статус
func (h *Handler) fail(err error) error {
	var verr *stopwatch.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity(verr.Message)
	case errors.Is(err, stopwatch.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, stopwatch.ErrAlreadyRunning), errors.Is(err, stopwatch.ErrNotRunning):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, stopwatch.ErrDeleted), errors.Is(err, stopwatch.ErrClosed):
		return huma.Error410Gone(err.Error())
	}
	h.log.Error("stopwatch operation failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
