package store

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// FileCredentialStore persists the credential in a plain file.
type FileCredentialStore struct {
	path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (f *FileCredentialStore) Load() (string, error) {
	data, err := ioutil.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "Unable to read credential file [%s]", f.path)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileCredentialStore) Save(key string) error {
	err := ioutil.WriteFile(f.path, []byte(key), 0600)
	if err != nil {
		return errors.Wrapf(err, "Unable to write credential file [%s]", f.path)
	}
	return nil
}

func (f *FileCredentialStore) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "Unable to remove credential file [%s]", f.path)
	}
	return nil
}
