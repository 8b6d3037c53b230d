package credentials

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
	"github.com/qdm12/vtoctl/internal/models"
)

// Load returns complete credentials from the storage, or an error
// wrapping errors.ErrNotFound.
func Load(storage Storage) (credentials models.Credentials, err error) {
	credentials, err = storage.Read()
	if err != nil {
		return models.Credentials{}, err
	}
	if !credentials.Complete() {
		return models.Credentials{}, fmt.Errorf("%w: %s is incomplete",
			errors.ErrNotFound, storage.Location())
	}
	return credentials, nil
}

// Resolve returns the credentials to log in with.
// If not interactive, the stored credentials must be complete.
// If interactive and the stored credentials are complete, the user is
// asked whether to use them. Otherwise the user is prompted for each field,
// with stored values offered as defaults, and the result is saved.
func Resolve(storage Storage, source Source, logger Logger,
	interactive bool) (credentials models.Credentials, err error) {
	if !interactive {
		credentials, err = Load(storage)
		if err != nil {
			return models.Credentials{}, fmt.Errorf("%w: %w: %w",
				errors.ErrConfig, errors.ErrNoCredentials, err)
		}
		return credentials, nil
	}

	existing, err := storage.Read()
	switch {
	case err == nil && existing.Complete():
		question := "Found '" + storage.Location() + "'. Use credentials from file?"
		yes, err := source.Confirm(question, true)
		if err != nil {
			return models.Credentials{}, fmt.Errorf("%w: %w", errors.ErrInput, err)
		}
		if yes {
			return existing, nil
		}
	case err == nil:
		logger.Info("credentials in " + storage.Location() +
			" are incomplete, you will be prompted to fill in the fields")
	case stderrors.Is(err, errors.ErrNotFound):
	default:
		logger.Warn("cannot read credentials: " + err.Error())
		existing = models.Credentials{}
	}

	return PromptAndSave(storage, source, logger, existing)
}

// PromptAndSave prompts the user for the device IP address, username
// and password, offering existing values as defaults, and saves the
// result to the storage. The existing password is kept if the user
// enters an empty password.
func PromptAndSave(storage Storage, source Source, logger Logger,
	existing models.Credentials) (credentials models.Credentials, err error) {
	credentials.IP, err = readWithDefault(source, "Device IP", existing.IP)
	if err != nil {
		return models.Credentials{}, err
	}

	credentials.Username, err = readWithDefault(source, "Username", existing.Username)
	if err != nil {
		return models.Credentials{}, err
	}

	credentials.Password, err = readPassword(source, existing.Password)
	if err != nil {
		return models.Credentials{}, err
	}

	err = checkComplete(credentials)
	if err != nil {
		return models.Credentials{}, err
	}

	err = storage.Save(credentials)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("saving credentials: %w", err)
	}
	logger.Info("saved credentials to " + storage.Location())
	logger.Warn("the password is stored in plaintext in " + storage.Location() +
		", make sure only you can read it")

	return credentials, nil
}

func readWithDefault(source Source, name, defaultValue string) (value string, err error) {
	prompt := name + ": "
	if defaultValue != "" {
		prompt = name + " [" + defaultValue + "]: "
	}

	line, err := source.ReadLine(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", errors.ErrInput, strings.ToLower(name), err)
	}

	value = strings.TrimSpace(line)
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

func readPassword(source Source, existing string) (password string, err error) {
	prompt := "Password: "
	if existing != "" {
		prompt = "Password (leave empty to keep the stored one): "
	}

	password, err = source.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: reading password: %w", errors.ErrInput, err)
	}

	if strings.TrimSpace(password) == "" {
		return existing, nil
	}
	return password, nil
}

func checkComplete(credentials models.Credentials) (err error) {
	var missing []string
	if credentials.IP == "" {
		missing = append(missing, "IP")
	}
	if credentials.Username == "" {
		missing = append(missing, "username")
	}
	if credentials.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %w: missing %s", errors.ErrInput,
			errors.ErrNoCredentials, strings.Join(missing, ", "))
	}
	return nil
}
