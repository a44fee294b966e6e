package atmos

import "github.com/sirupsen/logrus"

// NewLogger builds the structured logger used alongside (never in place of)
// the exact-format stdout report lines of §6. verbose raises the level to
// debug; otherwise only info-and-above fields are recorded.
func NewLogger(verbose bool) *logrus.Entry {
	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(logger)
}
