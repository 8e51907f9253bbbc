package shell

import "multistopwatch/internal/app/popup"

type output struct {
	Body popup.Shell
}

type themeInput struct {
	Body themeRequest
}

type themeRequest struct {
	Theme popup.Theme `json:"theme" enum:"light,dark" doc:"Theme to apply"`
}
