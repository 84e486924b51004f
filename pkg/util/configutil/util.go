// Package configutil contains helpers for loading configs with Viper.
package configutil

// SetDefault abstracts setting Viper defaults.
type SetDefault interface {
	SetDefault(key string, value any)
}

// SetDefaultFunc implements SetDefault.
type SetDefaultFunc func(key string, value any)

func (f SetDefaultFunc) SetDefault(key string, value any) {
	if f == nil {
		return
	}
	f(key, value)
}

// Prefixed returns a SetDefault that prepends prefix to every key set on i.
func Prefixed(i SetDefault, prefix string) SetDefault {
	return SetDefaultFunc(func(key string, value any) {
		i.SetDefault(prefix+key, value)
	})
}
