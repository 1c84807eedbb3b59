package api

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// HandleLogError logs errors intercepted by a logging decorator, unless they're expected
func HandleLogError(packageName, interfaceName, funcName string, err error, ignoredErrors ...error) {
	if err != nil {
		for _, e := range ignoredErrors {
			if errors.Is(err, e) {
				return
			}
		}
		log.Debug().Err(err).Msgf("%v.%v.%v decorator intercepted error", packageName, interfaceName, funcName)
	}
}
