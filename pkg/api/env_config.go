package api

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is the prefix of environment variables overriding config file values, e.g. BUILDSTATE_DATABASE_PASSWORD
const EnvPrefix = "BUILDSTATE"

var (
	ErrNotPtr    = errors.New("input must be a pointer")
	ErrNotStruct = errors.New("input must be a struct")
)

// OverrideFromEnv sets config fields from environment variables named <PREFIX>_<FIELD>, nested structs add their
// field name as another segment; an `env` tag replaces the field name
func OverrideFromEnv(config interface{}, prefix string, environ []string) error {
	environment := map[string]string{}
	for _, variable := range environ {
		name, value, _ := strings.Cut(variable, "=")
		environment[name] = value
	}

	return overrideFromEnvMap(config, strings.ToUpper(strings.TrimSuffix(prefix, "_"))+"_", environment)
}

func overrideFromEnvMap(config interface{}, prefix string, environment map[string]string) error {
	if !hasPrefixedVariables(environment, prefix) {
		return nil
	}

	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr {
		return ErrNotPtr
	}
	e := v.Elem()
	if e.Kind() != reflect.Struct {
		return ErrNotStruct
	}

	t := e.Type()
	for i := 0; i < t.NumField(); i++ {
		field := e.Field(i)
		structField := t.Field(i)
		if !field.CanSet() {
			continue
		}

		name := structField.Name
		if tag := structField.Tag.Get("env"); tag != "" {
			name = tag
		}
		variableName := prefix + strings.ToUpper(name)

		if value, ok := environment[variableName]; ok {
			log.Debug().Msgf("Overriding config field %v from envvar %v", structField.Name, variableName)
			if err := setField(field, value); err != nil {
				return errors.Wrapf(err, "Failed setting %v from envvar %v", structField.Name, variableName)
			}
			continue
		}

		if !hasPrefixedVariables(environment, variableName+"_") {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			if field.Type().Elem().Kind() != reflect.Struct {
				continue
			}
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := overrideFromEnvMap(field.Interface(), variableName+"_", environment); err != nil {
				return err
			}
		case reflect.Struct:
			if err := overrideFromEnvMap(field.Addr().Interface(), variableName+"_", environment); err != nil {
				return err
			}
		}
	}

	return nil
}

func hasPrefixedVariables(environment map[string]string, prefix string) bool {
	for name := range environment {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// setField parses value into the field's kind; slices are comma separated
func setField(field reflect.Value, value string) error {
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.String:
		field.SetString(value)
	case reflect.Slice:
		items := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := setField(slice.Index(i), strings.TrimSpace(item)); err != nil {
				return err
			}
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported field kind %v", field.Kind())
	}

	return nil
}
