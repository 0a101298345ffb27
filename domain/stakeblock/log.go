package stakeblock

import (
	"github.com/tandemnet/tandemd/infrastructure/logger"
	"github.com/tandemnet/tandemd/util/panics"
)

var log = logger.RegisterSubSystem("STKB")
var spawn = panics.GoroutineWrapperFunc(log)
