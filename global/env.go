package global

import (
	"github.com/micbed86/FancyNote-sub000/pkg/fileurl"
)

var (
	// ROOT is the directory the binary runs from
	ROOT string
	Name string = "FancyNote Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
