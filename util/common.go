package util

import (
	"github.com/0xERR0R/sigwatch/log"
)

// LogOnError logs the message only if error is not nil
func LogOnError(message string, err error) {
	if err != nil {
		log.Log().Error(message, err)
	}
}

// LogOnErrorWithEntry logs the message only if error is not nil
func LogOnErrorWithEntry(logEntry interface{ Error(args ...interface{}) }, message string, err error) {
	if err != nil {
		logEntry.Error(message, err)
	}
}

// FatalOnError logs the message only if error is not nil and exits the program execution
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}

// ConvertEach implements the functional map operation, under a different
// name to avoid confusion with Go's map type.
func ConvertEach[T, U any](slice []T, convert func(T) U) []U {
	if slice == nil {
		return nil
	}

	res := make([]U, 0, len(slice))

	for _, t := range slice {
		res = append(res, convert(t))
	}

	return res
}
