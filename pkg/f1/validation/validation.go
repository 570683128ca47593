// Package validation checks page inputs against their "binding" struct tags and renders failures in the
// configured locale.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	zhTrans "github.com/go-playground/validator/v10/translations/zh"
)

const (
	tagName   = "binding"
	notFuture = "notfuture"
)

// Validator validates structs tagged with "binding".
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	now      func() time.Time
}

// New returns a Validator whose messages use locale ("en" or "zh"; anything else is "en").
func New(locale string) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	v.validate.SetTagName(tagName)

	// "label" names the field in messages, then the json name
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}

		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	_ = v.validate.RegisterValidation(notFuture, v.isNotFuture)

	switch locale {
	case "zh":
		loc := zh.New()
		v.trans, _ = ut.New(loc, loc).GetTranslator("zh")
		_ = zhTrans.RegisterDefaultTranslations(v.validate, v.trans)
		v.registerTranslation(notFuture, "{0}不能晚于今天")
	default:
		loc := en.New()
		v.trans, _ = ut.New(loc, loc).GetTranslator("en")
		_ = enTrans.RegisterDefaultTranslations(v.validate, v.trans)
		v.registerTranslation(notFuture, "{0} cannot be in the future")
	}

	return v
}

func (v *Validator) registerTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(tag, v.trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}

			return msg
		})
}

// isNotFuture accepts a YYYY-MM-DD string or time.Time that is not after today.
func (v *Validator) isNotFuture(fl validator.FieldLevel) bool {
	var day time.Time

	switch val := fl.Field().Interface().(type) {
	case time.Time:
		day = val
	case string:
		if val == "" {
			return true
		}

		d, err := time.Parse(time.DateOnly, val)
		if err != nil {
			return false
		}

		day = d
	default:
		return false
	}

	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return !day.After(today)
}

// Struct validates i. It returns nil for values that are not structs or carry no binding tags.
func (v *Validator) Struct(i any) error {
	val := reflect.ValueOf(i)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct || !hasValidationTags(val.Type()) {
		return nil
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return &Error{
			Errors:     validationErrors,
			structType: val.Type(),
			trans:      v.trans,
		}
	}

	return err
}

func hasValidationTags(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get(tagName) != "" {
			return true
		}

		if field.Type.Kind() == reflect.Struct && field.Anonymous && hasValidationTags(field.Type) {
			return true
		}
	}

	return false
}

// Error lists the failed fields of one struct.
type Error struct {
	Errors     validator.ValidationErrors
	structType reflect.Type
	trans      ut.Translator
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))

	for _, fe := range e.Errors {
		msgs = append(msgs, e.resolveMessage(fe))
	}

	return strings.Join(msgs, "; ")
}

func (*Error) StatusCode() int {
	return http.StatusBadRequest
}

// Fields returns the names of the failed fields as they appear in messages.
func (e *Error) Fields() []string {
	fields := make([]string, 0, len(e.Errors))

	for _, fe := range e.Errors {
		fields = append(fields, fe.Field())
	}

	return fields
}

// resolveMessage prefers a msg tag (per rule, then wildcard) over the translator.
func (e *Error) resolveMessage(fe validator.FieldError) string {
	if field := findStructField(e.structType, fe.StructField()); field != nil {
		if msgTag := field.Tag.Get("msg"); msgTag != "" {
			msgMap := parseMsgTag(msgTag)

			if msg, ok := msgMap[fe.Tag()]; ok {
				return replaceVars(msg, fe, field)
			}

			if msg, ok := msgMap["*"]; ok {
				return replaceVars(msg, fe, field)
			}
		}
	}

	return fe.Translate(e.trans)
}

// parseMsgTag reads either a single message for every rule or "rule:message;rule:message".
func parseMsgTag(msgTag string) map[string]string {
	msgs := make(map[string]string)
	if msgTag == "" {
		return msgs
	}

	parts := strings.Split(msgTag, ";")

	if len(parts) == 1 && !strings.Contains(parts[0], ":") {
		msgs["*"] = msgTag
		return msgs
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)

		rule, msg, found := strings.Cut(part, ":")

		switch {
		case found && rule != "":
			msgs[strings.TrimSpace(rule)] = strings.TrimSpace(msg)
		case part != "":
			msgs["*"] = part
		}
	}

	return msgs
}

// replaceVars expands {field}, {label}, {tag}, {param} and {value}.
func replaceVars(msg string, fe validator.FieldError, field *reflect.StructField) string {
	jsonName := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if jsonName == "" || jsonName == "-" {
		jsonName = field.Name
	}

	labelName := field.Tag.Get("label")
	if labelName == "" {
		labelName = jsonName
	}

	r := strings.NewReplacer(
		"{field}", jsonName,
		"{label}", labelName,
		"{tag}", fe.Tag(),
		"{param}", fe.Param(),
		"{value}", fmt.Sprintf("%v", fe.Value()),
	)

	return r.Replace(msg)
}

func findStructField(t reflect.Type, name string) *reflect.StructField {
	if t == nil {
		return nil
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	if f, ok := t.FieldByName(name); ok {
		return &f
	}

	return nil
}
