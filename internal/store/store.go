package store

// CredentialStore persists the auth key issued by the game server: one opaque
// secret under a fixed name, written once and never rotated. A missing
// credential is not an error; the server tolerates unauthenticated requests.
type CredentialStore interface {
	Load() (string, error)
	Save(key string) error
	Remove() error
}
