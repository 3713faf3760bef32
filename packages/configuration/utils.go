package configuration

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefineParameters registers a flag for every field of the struct that parameters points to. The name of a flag is the
// prefix (the package name of the caller if omitted) followed by the lowerCamelCase field name (or its name tag), the
// default value and the usage are read from the default and usage tags. Nested structs get their own prefix.
func DefineParameters(flagSet *pflag.FlagSet, parameters interface{}, optionalPrefix ...string) {
	var parameterPrefix string
	if len(optionalPrefix) == 0 {
		parameterPrefix = lowerCamelCase(callerShortPackageName())
	} else {
		parameterPrefix = optionalPrefix[0]
	}

	val := reflect.ValueOf(parameters).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		valueAddr := valueField.Addr().Interface()
		var name string
		if customName := typeField.Tag.Get("name"); customName != "" {
			name = customName
		} else {
			name = lowerCamelCase(typeField.Name)
		}
		usage := typeField.Tag.Get("usage")

		switch valueField.Interface().(type) {
		case time.Duration:
			defaultValue, err := time.ParseDuration(typeField.Tag.Get("default"))
			if err != nil {
				panic(err)
			}
			flagSet.DurationVar(valueAddr.(*time.Duration), parameterPrefix+"."+name, defaultValue, usage)
		case bool:
			defaultValue, err := strconv.ParseBool(typeField.Tag.Get("default"))
			if err != nil {
				panic(err)
			}
			flagSet.BoolVar(valueAddr.(*bool), parameterPrefix+"."+name, defaultValue, usage)
		case int:
			defaultValue, err := strconv.Atoi(typeField.Tag.Get("default"))
			if err != nil {
				panic(err)
			}
			flagSet.IntVar(valueAddr.(*int), parameterPrefix+"."+name, defaultValue, usage)
		case string:
			defaultValue := typeField.Tag.Get("default")
			flagSet.StringVar(valueAddr.(*string), parameterPrefix+"."+name, defaultValue, usage)
		case int64:
			defaultValue, err := strconv.ParseInt(typeField.Tag.Get("default"), 10, 64)
			if err != nil {
				panic(err)
			}
			flagSet.Int64Var(valueAddr.(*int64), parameterPrefix+"."+name, defaultValue, usage)
		case uint64:
			defaultValue, err := strconv.ParseUint(typeField.Tag.Get("default"), 10, 64)
			if err != nil {
				panic(err)
			}
			flagSet.Uint64Var(valueAddr.(*uint64), parameterPrefix+"."+name, defaultValue, usage)
		case float64:
			defaultValue, err := strconv.ParseFloat(typeField.Tag.Get("default"), 64)
			if err != nil {
				panic(err)
			}
			flagSet.Float64Var(valueAddr.(*float64), parameterPrefix+"."+name, defaultValue, usage)
		default:
			DefineParameters(flagSet, valueAddr, parameterPrefix+"."+name)
		}
	}
}

// UpdateParameters overwrites the fields of the struct that parameters points to with the values that viper resolved
// for the keys that DefineParameters registered.
func UpdateParameters(v *viper.Viper, parameters interface{}, parameterPrefix string) {
	val := reflect.ValueOf(parameters).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		name := lowerCamelCase(typeField.Name)
		if customName := typeField.Tag.Get("name"); customName != "" {
			name = customName
		}
		key := parameterPrefix + "." + name

		switch valueField.Interface().(type) {
		case time.Duration:
			valueField.Set(reflect.ValueOf(v.GetDuration(key)))
		case bool:
			valueField.SetBool(v.GetBool(key))
		case int:
			valueField.SetInt(int64(v.GetInt(key)))
		case string:
			valueField.SetString(v.GetString(key))
		case int64:
			valueField.SetInt(v.GetInt64(key))
		case uint64:
			valueField.SetUint(v.GetUint64(key))
		case float64:
			valueField.SetFloat(v.GetFloat64(key))
		default:
			UpdateParameters(v, valueField.Addr().Interface(), key)
		}
	}
}

func lowerCamelCase(str string) string {
	runes := []rune(str)
	runeCount := len(runes)

	if runeCount == 0 || unicode.IsLower(runes[0]) {
		return str
	}

	runes[0] = unicode.ToLower(runes[0])
	if runeCount == 1 || unicode.IsLower(runes[1]) {
		return string(runes)
	}

	for i := 1; i < runeCount; i++ {
		if i+1 < runeCount && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

func callerShortPackageName() string {
	pc, _, _, _ := runtime.Caller(2)
	funcName := runtime.FuncForPC(pc).Name()
	lastSlash := strings.LastIndexByte(funcName, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}
	firstDot := strings.IndexByte(funcName[lastSlash:], '.') + lastSlash

	return funcName[lastSlash+1 : firstDot]
}
