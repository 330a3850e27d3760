package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Lock CTRL": {
		"pt": "Travar CTRL",
		"es": "Bloquear CTRL",
		"ru": "Зажать CTRL",
	},
	"Release CTRL": {
		"pt": "Soltar CTRL",
		"es": "Soltar CTRL",
		"ru": "Отпустить CTRL",
	},
	"CTRL IS PRESSED": {
		"pt": "CTRL PRESSIONADO",
		"es": "CTRL PRESIONADO",
		"ru": "CTRL ЗАЖАТ",
	},
	"CTRL RELEASED": {
		"pt": "CTRL SOLTO",
		"es": "CTRL SOLTADO",
		"ru": "CTRL ОТПУЩЕН",
	},
	"Greater Fortitude Hotkey:": {
		"pt": "Tecla de Greater Fortitude:",
		"es": "Tecla de Greater Fortitude:",
		"ru": "Клавиша Greater Fortitude:",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
		"ru": "Стоп",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"About DarkCtrlKeeper": {
		"pt": "Sobre o DarkCtrlKeeper",
		"es": "Acerca de DarkCtrlKeeper",
		"ru": "О DarkCtrlKeeper",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("DARKCTRLKEEPER_LANG")); forcedLang != "" {
		log.Printf("DARKCTRLKEEPER_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		locale := userLocales[0]
		log.Printf("Detected user locale: %s", locale)
		if strings.HasPrefix(locale, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(locale, "es") {
			lang = "es"
		} else if strings.HasPrefix(locale, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
