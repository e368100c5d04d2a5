package identityports

//go:generate mockgen -source=ports.go -destination=../../../mock/identity_resolver_mock.go -package=mock

// Resolver maps user and group names to numeric ids using the system
// identity databases.
type Resolver interface {
	LookupUser(name string) (uint32, error)
	LookupGroup(name string) (uint32, error)
}
