// Package logging builds the logrus loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w at the given level. format is "text" or
// "json".
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)

	switch format {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	return log, nil
}

// Progress returns a callback that logs at info level each time another
// step percent of total is done, and once on completion.
func Progress(log logrus.FieldLogger, msg string, step int) func(done, total int) {
	if step <= 0 || step > 100 {
		step = 10
	}
	start := time.Now()
	next := step
	return func(done, total int) {
		if total <= 0 {
			return
		}
		pct := done * 100 / total
		if pct < next && done != total {
			return
		}
		for next <= pct {
			next += step
		}
		log.WithFields(logrus.Fields{
			"done":    done,
			"total":   total,
			"percent": pct,
			"elapsed": time.Since(start).Round(time.Millisecond).String(),
		}).Info(msg)
	}
}
