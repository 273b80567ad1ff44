package audience

import (
	"github.com/kailas-cloud/audex/internal/domain/filter"
	"github.com/kailas-cloud/audex/internal/domain/intent"
)

// Interpreter translates free text into filter mutations on s. It must leave
// s untouched when nothing is understood.
type Interpreter interface {
	Interpret(text string, s *filter.State) intent.Result
}
