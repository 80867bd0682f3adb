package lr

import "github.com/npillmayer/schuko/gconf"

// ConfigFlag reads a boolean flag from the global configuration. The
// configuration may not be initialized if this module is used as a library;
// flags are unset then.
func ConfigFlag(key string) (flag bool) {
	defer func() {
		if r := recover(); r != nil {
			flag = false
		}
	}()
	return gconf.GetBool(key)
}
