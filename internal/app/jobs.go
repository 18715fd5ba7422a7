package app

import (
	"github.com/vk/flowchain/internal/registry"
	"github.com/vk/flowchain/jobs/pipeline"
	"github.com/vk/flowchain/jobs/wordcount"
)

// coreJobs is the default set of job modules registered when the caller does
// not supply its own.
var coreJobs = []registry.Module{
	&wordcount.Module{},
	&pipeline.Module{},
}
