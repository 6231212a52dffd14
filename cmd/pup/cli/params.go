// Copyright 2026 The Pupkit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the
// tagged fields of params. params must be a pointer to a struct.
// Panics on invalid input — a malformed params struct is a
// programming error, not runtime data.
//
// The usual pattern:
//
//	var params printParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("print", &params)
//	    },
//	    Run: func(args []string) error {
//	        // params fields are populated after flag parsing
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params,
// which must be a pointer to a struct.
//
// Three tags control binding:
//
//   - flag:"name" or flag:"name,n" — the long flag name and optional
//     single-character shorthand. Fields without a flag tag are
//     skipped.
//   - desc:"help text" — the flag's help description.
//   - default:"value" — the default, parsed per the field's Go type.
//
// Supported field types: string, bool, int, uint64, []string. uint64
// flags and defaults accept hex ("0x100") via strconv base-0 rules,
// which is how segment IDs and image versions are usually written.
//
// Embedded structs are bound recursively, so shared parameter
// blocks like [JSONOutput] compose by embedding.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}

		name, shorthand := parseFlagTag(flagTag)
		description := field.Tag.Get("desc")
		defaultString := field.Tag.Get("default")

		if err := bindField(fieldValue, field, flagSet, name, shorthand, description, defaultString); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(fieldValue reflect.Value, field reflect.StructField, flagSet *pflag.FlagSet,
	name, shorthand, description, defaultString string) error {

	if !fieldValue.CanAddr() {
		return fmt.Errorf("field is not addressable")
	}

	switch pointer := fieldValue.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(pointer, name, shorthand, defaultString, description)

	case *bool:
		defaultValue := false
		if defaultString != "" {
			parsed, err := strconv.ParseBool(defaultString)
			if err != nil {
				return fmt.Errorf("bool default %q: %w", defaultString, err)
			}
			defaultValue = parsed
		}
		flagSet.BoolVarP(pointer, name, shorthand, defaultValue, description)

	case *int:
		defaultValue := 0
		if defaultString != "" {
			parsed, err := strconv.Atoi(defaultString)
			if err != nil {
				return fmt.Errorf("int default %q: %w", defaultString, err)
			}
			defaultValue = parsed
		}
		flagSet.IntVarP(pointer, name, shorthand, defaultValue, description)

	case *uint64:
		var defaultValue uint64
		if defaultString != "" {
			parsed, err := strconv.ParseUint(defaultString, 0, 64)
			if err != nil {
				return fmt.Errorf("uint64 default %q: %w", defaultString, err)
			}
			defaultValue = parsed
		}
		flagSet.Uint64VarP(pointer, name, shorthand, defaultValue, description)

	case *[]string:
		var defaultValue []string
		if defaultString != "" {
			defaultValue = strings.Split(defaultString, ",")
		}
		flagSet.StringSliceVarP(pointer, name, shorthand, defaultValue, description)

	default:
		return fmt.Errorf("unsupported flag field type %s", field.Type)
	}
	return nil
}

// parseFlagTag splits a flag tag into name and optional one-character
// shorthand ("index,n" -> "index", "n").
func parseFlagTag(tag string) (name, shorthand string) {
	parts := strings.SplitN(tag, ",", 2)
	name = parts[0]
	if len(parts) == 2 {
		shorthand = parts[1]
	}
	return name, shorthand
}
