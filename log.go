package genoindex

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger used throughout build and search. It
// discards output by default; the CLI points it at stderr and raises its
// level when --verbose is passed.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}
