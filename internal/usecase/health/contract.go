package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// PopulationSource reports the size of the loaded population.
type PopulationSource interface {
	Len() int
}
