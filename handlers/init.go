package handlers

import "github.com/sirupsen/logrus"

var log *logrus.Logger
var submit func(path, name, caption string)

func Init(logger *logrus.Logger, submitFn func(path, name, caption string)) error {
	log = logger.WithFields(logrus.Fields{
		"component": "handlers",
	}).Logger
	submit = submitFn
	return nil
}
