package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		LogLevelDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)),
}

// LogLevelDecodeHook converts strings such as "debug" or "WARN" into a logrus.Level.
func LogLevelDecodeHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(log.InfoLevel) {
			return data, nil
		}
		return log.ParseLevel(data.(string))
	}
}
