package i18n

// Dictionary maps a flat path ("labels.name") to the text for one locale.
type Dictionary map[string]string

var dictionaries = map[Locale]Dictionary{
	English: {
		"alerts.inputTime":    "Incorrect time format. Expected 00:00:00 format",
		"defaults.name":       "stopwatch",
		"labels.projectName":  "MultiStopwatch",
		"labels.name":         "Name",
		"labels.updatedAt":    "Last updated",
		"labels.about":        "About",
		"labels.report":       "Report an issue",
		"labels.theme":        "Theme",
		"labels.running":      "running",
		"labels.paused":       "paused",
		"labels.empty":        "No stopwatches yet",
		"buttons.resumePause": "Resume/Pause",
		"buttons.delete":      "Delete",
		"buttons.reset":       "Reset",
		"buttons.new":         "New",
		"themes.light":        "Light",
		"themes.dark":         "Dark",
		"formats.dateTime":    "01/02/2006, 15:04:05",
	},
	BrazilianPortuguese: {
		"alerts.inputTime":    "Formato incorreto. Utilize o padrão 00:00:00",
		"defaults.name":       "Cronômetro",
		"labels.projectName":  "MultiCronômetro",
		"labels.name":         "Nome",
		"labels.updatedAt":    "Atualizado em",
		"labels.about":        "Sobre",
		"labels.report":       "Reportar um problema",
		"labels.theme":        "Tema",
		"labels.running":      "em execução",
		"labels.paused":       "pausado",
		"labels.empty":        "Nenhum cronômetro ainda",
		"buttons.resumePause": "Iniciar/pausar",
		"buttons.delete":      "Excluir",
		"buttons.reset":       "Reiniciar",
		"buttons.new":         "Novo",
		"themes.light":        "Claro",
		"themes.dark":         "Escuro",
		"formats.dateTime":    "02/01/2006 15:04:05",
	},
}
