package repository

// Repositories is a container for all repository instances.
//
// Services receive it once at startup and pick the stores they need.
type Repositories struct {
	Store *MemoryStore
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Store: NewMemoryStore(),
	}
}
