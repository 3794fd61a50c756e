package crypto

// Keyring provides secure storage for the portal's secrets
type Keyring interface {
	Get(name string) (string, error)
	Set(name, value string) error
	Delete(name string) error
	IsAvailable() bool
}

const (
	ServiceName = "invoicer"

	// APIKeyName holds the record store credential. The same value is sent
	// as both the apikey header and the bearer token.
	APIKeyName = "record-store-api-key"

	// HistoryKeyName holds the generated encryption password for the local
	// submission history database.
	HistoryKeyName = "history-db-key"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
