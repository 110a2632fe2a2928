// Package i18n holds the message catalog used by validators. Only the
// English catalog ships; SetTranslator swaps the whole catalog.
package i18n

import (
	"strings"
	"sync"
)

// Message keys.
const (
	KeyRequired  = "required"
	KeyMinValue  = "min_value"
	KeyMaxValue  = "max_value"
	KeyMinLength = "min_length"
	KeyMaxLength = "max_length"
	KeyBoolean   = "boolean"
	KeyInteger   = "integer"
	KeyURL       = "url"
	KeyUUID      = "uuid"
	KeyChoice    = "choice"
	KeyLength    = "length"
	KeyMapping   = "mapping"
	KeySequence  = "sequence"
)

// Translator retrieves messages for message keys. data provides values for
// {placeholders} in the template.
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

var english = map[string]string{
	KeyRequired:  "This value is required.",
	KeyMinValue:  "The value has to be greater than {min}",
	KeyMaxValue:  "The value has to be lower than {max}",
	KeyMinLength: "The value has to be greater than {min} characters",
	KeyMaxLength: "The value has to be lower than {max} characters",
	KeyBoolean:   "The value is not a valid boolean value",
	KeyInteger:   "The value is not a valid integer",
	KeyURL:       "The value is not a valid URL",
	KeyUUID:      "The value is not a valid UUID",
	KeyChoice:    "The value is not in the list of possible choices: {choices}",
	KeyLength:    "The value has no length",
	KeyMapping:   "The field value '{value}' has to be a dictionary",
	KeySequence:  "The value '{value}' has to be a list",
}

func (dictTranslator) Message(key string, data map[string]string) string {
	tpl, ok := english[key]
	if !ok {
		return key
	}
	return Format(tpl, data)
}

// Format replaces {name} placeholders in tpl with data values.
func Format(tpl string, data map[string]string) string {
	if len(data) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{}
)

// SetTranslator replaces the Translator implementation; nil restores the
// built-in catalog.
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}
