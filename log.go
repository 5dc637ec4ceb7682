package depotassign

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

var maxLvl int

// InitLoggers configures the package logger. The numeric level follows
// the solver CLI convention: 1 errors only, 2 info, 3 debug, 4 spam.
func InitLoggers(logLvl int) {
	maxLvl = logLvl
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch {
	case logLvl <= 1:
		logger.SetLevel(logrus.ErrorLevel)
	case logLvl == 2:
		logger.SetLevel(logrus.InfoLevel)
	case logLvl == 3:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.TraceLevel)
	}
}

func Log(msgLvl int, printF string, args ...interface{}) {
	if msgLvl > maxLvl {
		return
	}
	switch msgLvl {
	case 1:
		logger.Errorf(printF, args...)
	case 2:
		logger.Infof(printF, args...)
	case 3:
		logger.Debugf(printF, args...)
	default:
		logger.Tracef(printF, args...)
	}
}
