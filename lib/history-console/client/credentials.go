package historyclient

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// CredentialProvider источник токена для заголовка Authorization
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken токен, переданный при запуске
type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	return strings.TrimSpace(string(t)), nil
}

// TokenFile токен из файла, перечитывается на каждый запрос
type TokenFile struct {
	Path string
}

func (t TokenFile) Token(_ context.Context) (string, error) {
	body, err := os.ReadFile(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			// отсутствие токена не обрабатываем особо, запрос уйдет без авторизации
			return "", nil
		}
		return "", errors.Wrap(err, "ошибка чтения файла с токеном")
	}
	return strings.TrimSpace(string(body)), nil
}
