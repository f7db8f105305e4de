package domain

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// OptionPrefix marks configuration keys that are command-line flag defaults
const OptionPrefix = "-"

// Options maps a flag name such as "--git-args" to its value
type Options map[string]any

// MergeOptions combines two option sets over the union of their keys.
// For each key the primary value wins only when it is truthy, so an
// explicit false or empty primary value never hides a secondary default.
func MergeOptions(primary, secondary Options) Options {
	merged := make(Options, len(primary)+len(secondary))
	for k, v := range secondary {
		merged[k] = v
	}
	for k, v := range primary {
		_, inSecondary := secondary[k]
		if Truthy(v) || !inSecondary {
			merged[k] = v
		}
	}
	return merged
}

// Truthy reports whether v counts as set. nil, false, "", numeric zero
// and empty collections are falsy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}

// String returns the option as a string, or "" when unset
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the option as a bool. Strings are parsed with strconv.
func (o Options) Bool(key string) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case nil:
		return false
	default:
		return Truthy(v)
	}
}

// Int returns the option as an int, or def when unset or not a number
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// IsOptionKey reports whether key addresses the options mapping
func IsOptionKey(key string) bool {
	return strings.HasPrefix(key, OptionPrefix)
}

// Option keys read by the commands
const (
	OptGitArgs     = "--git-args"
	OptGitPullArgs = "--git-pull-args"
	OptFormat      = "--format"
	OptWidth       = "--width"
	OptNoWrap      = "--no-wrap"
	OptSoft        = "--soft"
	OptMoveFiles   = "--move-files"
	OptGitHubToken = "--github-auth-token"
	OptGitLabToken = "--gitlab-auth-token"
)
