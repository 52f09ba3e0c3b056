package signal

import (
	"github.com/kaspanet/ldbview/infrastructure/logger"
)

var log = logger.RegisterSubSystem("SGNL")
