package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"slices"
	"strings"
)

var ErrInsecureAuth = errors.New("refusing to send relay credentials over an unencrypted connection")

// relayLogin implements the LOGIN mechanism. Office365 submission does not
// offer PLAIN, so smtp.PlainAuth cannot be used against it.
type relayLogin struct {
	username, password string
}

func LoginAuth(username, password string) smtp.Auth {
	return &relayLogin{username: username, password: password}
}

// Start has the same transport rule as smtp.PlainAuth: credentials go only
// over TLS, or to localhost.
func (a *relayLogin) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS && !isLocalhost(server.Name) {
		return "", nil, ErrInsecureAuth
	}
	if len(server.Auth) > 0 && !slices.Contains(server.Auth, "LOGIN") {
		return "", nil, fmt.Errorf("relay %s does not offer LOGIN (offers %s)", server.Name, strings.Join(server.Auth, " "))
	}
	return "LOGIN", nil, nil
}

func (a *relayLogin) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(string(fromServer))) {
	case "username:":
		return []byte(a.username), nil
	case "password:":
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unknown LOGIN challenge %q", fromServer)
	}
}

func isLocalhost(name string) bool {
	return name == "localhost" || name == "127.0.0.1" || name == "::1"
}
