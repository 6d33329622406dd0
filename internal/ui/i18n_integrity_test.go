package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-jalali-picker/internal/config"
)

var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyLblSelected,
	config.TKeyLblGregorian,
	config.TKeyLblNoSelection,
	config.TKeyLblFeed,
	config.TKeyBtnSettings,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblYearStart,
	config.TKeyLblYearEnd,
	config.TKeyHelpYears,
	config.TKeyLblClamp,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblLabel,
	config.TKeyLblGeneral,
	config.TKeyLblPicker,
	config.TKeyLblFooter,
	config.TKeyEvtSummary,
	config.TKeyEvtSummaryAge,
	config.TKeyErrYearReq,
	config.TKeyErrYearNum,
	config.TKeyErrYearOrder,
	config.TKeyErrYearRange,
	config.TKeyErrYearSpan,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
}

// loadLocale reads a locale file whether tests run from internal/ui or the root.
func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()

	name := "active." + lang + ".json"
	content, err := os.ReadFile(filepath.Join("locales", name))
	if os.IsNotExist(err) {
		content, err = os.ReadFile(filepath.Join("..", "..", "internal", "ui", "locales", name))
	}
	require.NoErrorf(t, err, "Must load %s", name)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			jsonMap := loadLocale(t, lang)

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !definedKeys[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
				}
			}
		})
	}
}
