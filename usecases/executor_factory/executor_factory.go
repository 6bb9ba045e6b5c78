package executor_factory

import (
	"github.com/DotRPM/dot-image/repositories"
)

// ExecutorFactory hands out database executors to usecases without tying them
// to a concrete pool.
type ExecutorFactory interface {
	NewExecutor() repositories.Executor
}

type DbExecutorFactory struct {
	executorGetter repositories.ExecutorGetter
}

func NewDbExecutorFactory(executorGetter repositories.ExecutorGetter) DbExecutorFactory {
	return DbExecutorFactory{
		executorGetter: executorGetter,
	}
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.executorGetter.GetExecutor()
}
