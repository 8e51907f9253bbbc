package popup

import "context"

type ctxKey struct{}

func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext возвращает приложение, положенное в контекст командой верхнего уровня
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	return app, ok && app != nil
}
